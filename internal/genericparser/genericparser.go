// Package genericparser extracts trades from the one-row-per-trade CSV
// shape: each data row already describes a closed position with its
// realized P&L.
package genericparser

import (
	"fmt"
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
const FormatName = "generic"

var logger = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(l logging.Logger) {
	if l != nil {
		logger = l
	}
}

// Parse extracts one MatchedTrade per data row. Rows with an unparseable
// date or an empty symbol are skipped and sampled in the stats; every
// other optional field defaults rather than failing the row.
func Parse(table tokenizer.RawTable, opts models.ParseOptions) (*models.ParseResult, error) {
	return parse(table, opts, logger)
}

func parse(table tokenizer.RawTable, opts models.ParseOptions, log logging.Logger) (*models.ParseResult, error) {
	if len(table.Headers) == 0 {
		return nil, parsererror.ErrEmptyFile
	}

	cols := columns.ResolveMap(table.Headers, columns.GenericTable().WithHints(opts.Hints))
	if err := cols.Require(table.Headers, columns.FieldDate, columns.FieldSymbol, columns.FieldPnL); err != nil {
		return nil, err
	}

	stats := models.ParseStats{Format: FormatName, TotalRows: len(table.Rows)}
	var trades []models.MatchedTrade

	for i, row := range table.Rows {
		rowNum := i + 2 // 1-based file line, after the header

		rawDate := cols.Value(row, columns.FieldDate)
		date, err := dateutils.ParseDate(rawDate, opts.DayFirst)
		if err != nil {
			stats.RecordSkip(rowNum, fmt.Sprintf("Invalid date %q", rawDate))
			log.Warn("Skipping row: unparseable date",
				logging.Field{Key: logging.FieldRow, Value: rowNum},
				logging.Field{Key: logging.FieldReason, Value: rawDate})
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(cols.Value(row, columns.FieldSymbol)))
		if symbol == "" {
			stats.RecordSkip(rowNum, "Missing symbol")
			log.Warn("Skipping row: missing symbol",
				logging.Field{Key: logging.FieldRow, Value: rowNum})
			continue
		}

		// A missing or garbage P&L cell defaults toward zero; the row
		// still counts as parsed since date and symbol were present.
		pnl := currencyutils.ParseAmount(cols.Value(row, columns.FieldPnL)).Round(2)

		// An absent quantity defaults to one unit; an explicit "0" is
		// kept as written.
		rawQuantity := cols.Value(row, columns.FieldQuantity)
		quantity := currencyutils.ParseQuantity(rawQuantity)
		if strings.TrimSpace(rawQuantity) == "" {
			quantity = 1
		}

		entry := currencyutils.ParseAmount(cols.Value(row, columns.FieldEntryPrice))
		exit := currencyutils.ParseAmount(cols.Value(row, columns.FieldExitPrice))
		price := exit
		if price.IsZero() {
			price = entry
		}

		isoDate := dateutils.ToISODate(date)
		trades = append(trades, models.MatchedTrade{
			Date:      isoDate,
			Symbol:    symbol,
			Side:      "sell",
			Quantity:  quantity,
			Price:     price,
			AssetType: classifyAssetType(cols.Value(row, columns.FieldType)),
			PnL:       pnl,
			CloseDate: isoDate,
			Notes:     strings.TrimSpace(cols.Value(row, columns.FieldNotes)),
			Selected:  true,
		})
		stats.ParsedCount++
	}

	if len(trades) == 0 {
		return nil, &parsererror.NoTradesError{Reasons: stats.SkippedReasons}
	}

	// ISO dates sort lexicographically, so string comparison is enough.
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date > trades[j].Date
	})

	log.Info("Parsed generic trade CSV",
		logging.Field{Key: logging.FieldCount, Value: len(trades)},
		logging.Field{Key: logging.FieldSkipped, Value: stats.SkippedCount})
	return &models.ParseResult{Trades: trades, Stats: stats}, nil
}

// classifyAssetType maps a free-form type cell onto an asset type.
// Anything that is not recognizably an option counts as stock.
func classifyAssetType(rawType string) models.AssetType {
	t := strings.ToLower(rawType)
	switch {
	case strings.Contains(t, "call"):
		return models.AssetCall
	case strings.Contains(t, "put"):
		return models.AssetPut
	default:
		return models.AssetStock
	}
}
