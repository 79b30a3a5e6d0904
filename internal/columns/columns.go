// Package columns maps the semantic fields the extractors need onto the
// arbitrary header text of a broker export. Matching is duck-typed on
// purpose: ordered candidate-name tables resolved by substring
// containment, no schema inference beyond that.
package columns

import (
	"regexp"
	"strings"

	"tradevault/trade-import/internal/parsererror"
)

// Field names one semantic column an extractor reads.
type Field string

// Semantic fields across both supported input shapes.
const (
	FieldDate       Field = "date"
	FieldSymbol     Field = "symbol"
	FieldPnL        Field = "pnl"
	FieldType       Field = "type"
	FieldQuantity   Field = "quantity"
	FieldEntryPrice Field = "entry_price"
	FieldExitPrice  Field = "exit_price"
	FieldNotes      Field = "notes"

	FieldActivityDate Field = "activity_date"
	FieldTransCode    Field = "trans_code"
	FieldInstrument   Field = "instrument"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldAmount       Field = "amount"
)

// NotFound is the index recorded for unresolved fields.
const NotFound = -1

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader lowercases a header, replaces non-alphanumeric runs
// with '_' and trims leading/trailing underscores.
func NormalizeHeader(header string) string {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(header), "_")
	return strings.Trim(normalized, "_")
}

// CandidateTable holds the ordered candidate header names per field.
// Order defines priority: the first candidate that matches any header wins.
type CandidateTable map[Field][]string

// GenericTable returns the candidate table for the one-row-per-trade shape.
func GenericTable() CandidateTable {
	return CandidateTable{
		FieldDate:       {"date", "close date", "trade date", "time"},
		FieldSymbol:     {"symbol", "ticker", "instrument", "underlying"},
		FieldPnL:        {"pnl", "p/l", "p&l", "profit", "gain", "realized"},
		FieldType:       {"asset type", "option type", "type"},
		FieldQuantity:   {"quantity", "qty", "contracts", "shares", "size"},
		FieldEntryPrice: {"entry price", "open price", "buy price", "avg cost", "cost"},
		FieldExitPrice:  {"exit price", "close price", "sell price"},
		FieldNotes:      {"notes", "comment", "setup", "strategy"},
	}
}

// BrokerTable returns the candidate table for the per-leg (Robinhood) shape.
func BrokerTable() CandidateTable {
	return CandidateTable{
		FieldActivityDate: {"activity date", "process date", "date"},
		FieldTransCode:    {"trans code", "transaction code", "action"},
		FieldInstrument:   {"instrument", "symbol", "ticker"},
		FieldDescription:  {"description"},
		FieldQuantity:     {"quantity", "qty"},
		FieldPrice:        {"price"},
		FieldAmount:       {"amount"},
	}
}

// WithHints returns a copy of the table with user-supplied candidates
// prepended, so hints take priority over the built-in names.
func (t CandidateTable) WithHints(hints map[string][]string) CandidateTable {
	if len(hints) == 0 {
		return t
	}
	merged := make(CandidateTable, len(t))
	for field, candidates := range t {
		if extra, ok := hints[string(field)]; ok {
			merged[field] = append(append([]string{}, extra...), candidates...)
		} else {
			merged[field] = candidates
		}
	}
	return merged
}

// Resolve finds the index of the first header matching any candidate.
// Matching is bidirectional substring containment over normalized
// strings; candidate list order defines priority.
func Resolve(headers []string, candidates []string) (int, bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	for _, candidate := range candidates {
		nc := NormalizeHeader(candidate)
		if nc == "" {
			continue
		}
		for i, nh := range normalized {
			if nh == "" {
				continue
			}
			if strings.Contains(nh, nc) || strings.Contains(nc, nh) {
				return i, true
			}
		}
	}
	return NotFound, false
}

// ColumnMap is a resolved index per semantic field, built once per parse.
type ColumnMap map[Field]int

// ResolveMap resolves every field of the table against the headers.
// Unresolved fields map to NotFound; requiredness is checked separately.
func ResolveMap(headers []string, table CandidateTable) ColumnMap {
	resolved := make(ColumnMap, len(table))
	for field, candidates := range table {
		idx, ok := Resolve(headers, candidates)
		if !ok {
			idx = NotFound
		}
		resolved[field] = idx
	}
	return resolved
}

// Require checks that every listed field resolved, returning a
// file-level MissingColumnError for the first one that did not.
func (m ColumnMap) Require(headers []string, required ...Field) error {
	for _, field := range required {
		if idx, ok := m[field]; !ok || idx == NotFound {
			return &parsererror.MissingColumnError{Field: string(field), Headers: headers}
		}
	}
	return nil
}

// Value safely reads the cell for a field from a row, returning ""
// when the field is unresolved or the row is short.
func (m ColumnMap) Value(row []string, field Field) string {
	idx, ok := m[field]
	if !ok || idx == NotFound || idx >= len(row) {
		return ""
	}
	return row[idx]
}
