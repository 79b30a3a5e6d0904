// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// AssetType identifies the kind of instrument a trade was made on.
type AssetType string

const (
	AssetStock AssetType = "stock"
	AssetCall  AssetType = "call"
	AssetPut   AssetType = "put"
)

// MatchedTrade is the universal output unit of a parse: one completed
// round-trip trade ready for the journal. It is created by an extractor,
// annotated by the duplicate detector, and only its Selected flag is
// mutated afterwards (by the user, through the import session).
type MatchedTrade struct {
	Date        string          `csv:"Date"` // trade date in YYYY-MM-DD
	Symbol      string          `csv:"Symbol"`
	Side        string          `csv:"Side"` // always "sell": trades represent closed positions
	Quantity    int             `csv:"Quantity"`
	Price       decimal.Decimal `csv:"Price"`
	AssetType   AssetType       `csv:"AssetType"`
	PnL         decimal.Decimal `csv:"PnL"`       // realized P&L, rounded to the cent
	OpenDate    string          `csv:"OpenDate"`  // YYYY-MM-DD, empty when unknown
	CloseDate   string          `csv:"CloseDate"` // YYYY-MM-DD, empty when unknown
	Notes       string          `csv:"Notes"`
	IsDuplicate bool            `csv:"-"`
	Selected    bool            `csv:"-"`
}

// TradeRecord is the persistence payload handed to the journal sink,
// one per imported trade. It doubles as the journal's CSV row shape.
type TradeRecord struct {
	Symbol     string          `csv:"symbol"`
	TradeType  string          `csv:"trade_type"`
	AssetType  string          `csv:"asset_type"`
	Quantity   int             `csv:"quantity"`
	Price      decimal.Decimal `csv:"price"`
	TotalValue decimal.Decimal `csv:"total_value"`
	PnL        decimal.Decimal `csv:"pnl"`
	Notes      string          `csv:"notes"`
	TradeDate  string          `csv:"trade_date"`
}

// Record converts a matched trade into its persistence payload.
func (t *MatchedTrade) Record() TradeRecord {
	return TradeRecord{
		Symbol:     t.Symbol,
		TradeType:  t.Side,
		AssetType:  string(t.AssetType),
		Quantity:   t.Quantity,
		Price:      t.Price,
		TotalValue: t.Price.Mul(decimal.NewFromInt(int64(t.Quantity))),
		PnL:        t.PnL.Round(2),
		Notes:      t.Notes,
		TradeDate:  t.Date,
	}
}
