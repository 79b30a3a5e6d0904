package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransCode classifies a single broker transaction leg.
type TransCode string

const (
	CodeBTO  TransCode = "BTO"  // buy to open (option)
	CodeSTC  TransCode = "STC"  // sell to close (option)
	CodeOEXP TransCode = "OEXP" // option expiration
	CodeBuy  TransCode = "Buy"  // stock buy
	CodeSell TransCode = "Sell" // stock sell
)

// BrokerTransaction is one raw leg from a per-leg broker export.
// Immutable once parsed; quantities are always non-negative.
type BrokerTransaction struct {
	Date        time.Time
	Instrument  string
	Description string
	Code        TransCode
	Quantity    int
	Price       decimal.Decimal
	Amount      decimal.Decimal // signed: debits negative, credits positive
}

// IsOption reports whether the leg belongs to an options position
// rather than a plain stock position.
func (t *BrokerTransaction) IsOption() bool {
	switch t.Code {
	case CodeBTO, CodeSTC, CodeOEXP:
		return true
	}
	return false
}
