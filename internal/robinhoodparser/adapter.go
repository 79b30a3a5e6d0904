package robinhoodparser

import (
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/parser"
	"tradevault/trade-import/internal/tokenizer"
)

// Adapter implements the models.TradeParser interface for Robinhood-style
// per-leg activity exports.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a new adapter for the robinhoodparser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
	}
}

// Parse matches opening and closing legs into completed trades.
func (a *Adapter) Parse(table tokenizer.RawTable, opts models.ParseOptions) (*models.ParseResult, error) {
	return parse(table, opts, a.GetLogger())
}
