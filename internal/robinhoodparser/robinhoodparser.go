// Package robinhoodparser extracts trades from Robinhood-style per-leg
// activity exports. Each CSV row is one raw transaction leg; opening
// legs are matched against closing and expiration legs per position,
// with the original cost basis allocated pro-rata across partial fills.
package robinhoodparser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"tradevault/trade-import/internal/columns"
	"tradevault/trade-import/internal/currencyutils"
	"tradevault/trade-import/internal/dateutils"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/parsererror"
	"tradevault/trade-import/internal/tokenizer"
)

// FormatName identifies this extractor in parse stats.
const FormatName = "robinhood"

// expirationPrefix is prepended by Robinhood to the description of
// option expiration legs. It must be stripped before grouping so that
// an OEXP leg lands in the same group as the BTO that opened it.
const expirationPrefix = "Option Expiration for "

var (
	logger = logging.GetLogger()

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SetLogger sets a custom logger for this package
func SetLogger(l logging.Logger) {
	if l != nil {
		logger = l
	}
}

// Parse classifies every row into a transaction leg, groups the legs by
// position, and emits one or two matched trades per closeable group.
func Parse(table tokenizer.RawTable, opts models.ParseOptions) (*models.ParseResult, error) {
	return parse(table, opts, logger)
}

func parse(table tokenizer.RawTable, opts models.ParseOptions, log logging.Logger) (*models.ParseResult, error) {
	if len(table.Headers) == 0 {
		return nil, parsererror.ErrEmptyFile
	}

	cols := columns.ResolveMap(table.Headers, columns.BrokerTable().WithHints(opts.Hints))
	if err := cols.Require(table.Headers, columns.FieldActivityDate, columns.FieldTransCode); err != nil {
		return nil, err
	}

	stats := models.ParseStats{Format: FormatName, TotalRows: len(table.Rows)}
	var legs []models.BrokerTransaction

	for i, row := range table.Rows {
		rowNum := i + 2 // 1-based file line, after the header

		rawCode := cols.Value(row, columns.FieldTransCode)
		code, ok := classifyTransCode(rawCode)
		if !ok {
			// Non-trade activity (dividends, transfers, interest).
			stats.RecordSkip(rowNum, fmt.Sprintf("Unsupported transaction code %q", strings.TrimSpace(rawCode)))
			continue
		}

		rawDate := cols.Value(row, columns.FieldActivityDate)
		date, err := dateutils.ParseDate(rawDate, opts.DayFirst)
		if err != nil {
			stats.RecordSkip(rowNum, fmt.Sprintf("Invalid date %q", rawDate))
			log.Warn("Skipping leg: unparseable date",
				logging.Field{Key: logging.FieldRow, Value: rowNum},
				logging.Field{Key: logging.FieldReason, Value: rawDate})
			continue
		}

		legs = append(legs, models.BrokerTransaction{
			Date:        date,
			Instrument:  strings.TrimSpace(cols.Value(row, columns.FieldInstrument)),
			Description: strings.TrimSpace(cols.Value(row, columns.FieldDescription)),
			Code:        code,
			Quantity:    currencyutils.ParseQuantity(cols.Value(row, columns.FieldQuantity)),
			Price:       currencyutils.ParseAmount(cols.Value(row, columns.FieldPrice)),
			Amount:      currencyutils.ParseAmount(cols.Value(row, columns.FieldAmount)),
		})
		stats.ParsedCount++
	}

	trades := matchGroups(buildGroups(legs))

	if len(trades) == 0 {
		return nil, &parsererror.NoTradesError{Reasons: stats.SkippedReasons}
	}

	sort.SliceStable(trades, func(i, j int) bool {
		if trades[i].Date != trades[j].Date {
			return trades[i].Date > trades[j].Date
		}
		return trades[i].Symbol < trades[j].Symbol
	})

	log.Info("Parsed per-leg broker CSV",
		logging.Field{Key: logging.FieldCount, Value: len(trades)},
		logging.Field{Key: logging.FieldSkipped, Value: stats.SkippedCount})
	return &models.ParseResult{Trades: trades, Stats: stats}, nil
}

// classifyTransCode maps a raw trans code cell to a leg classification.
// Unknown codes are skipped by the caller, counted but not fatal.
func classifyTransCode(raw string) (models.TransCode, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BTO":
		return models.CodeBTO, true
	case "STC":
		return models.CodeSTC, true
	case "OEXP":
		return models.CodeOEXP, true
	case "BUY":
		return models.CodeBuy, true
	case "SELL":
		return models.CodeSell, true
	default:
		return "", false
	}
}

// NormalizeDescription produces the grouping key for option legs: strip
// the expiration prefix, collapse whitespace, lowercase. Two legs group
// together iff their normalized descriptions are byte-identical, so any
// change here is a breaking change to matching behavior.
func NormalizeDescription(description string) string {
	s := strings.TrimPrefix(description, expirationPrefix)
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ToLower(s)
}
