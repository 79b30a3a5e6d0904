package models

import (
	"tradevault/trade-import/internal/tokenizer"
)

// ParseOptions carries the caller-supplied knobs for one parse pass.
type ParseOptions struct {
	// DayFirst selects the DD/MM/YYYY convention for ambiguous slash
	// dates. US broker exports are month-first, the default.
	DayFirst bool

	// Hints adds extra candidate header names per semantic field,
	// checked before the built-in candidate tables.
	Hints map[string][]string
}

// TradeParser is the interface every extractor implements: it turns a
// tokenized table into matched trades plus parse stats.
type TradeParser interface {
	Parse(table tokenizer.RawTable, opts ParseOptions) (*ParseResult, error)
}
