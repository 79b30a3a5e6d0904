package genericparser

import (
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/parser"
	"tradevault/trade-import/internal/tokenizer"
)

// Adapter implements the models.TradeParser interface for the generic
// one-row-per-trade CSV shape.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a new adapter for the genericparser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
	}
}

// Parse extracts matched trades from the tokenized table.
func (a *Adapter) Parse(table tokenizer.RawTable, opts models.ParseOptions) (*models.ParseResult, error) {
	return parse(table, opts, a.GetLogger())
}
