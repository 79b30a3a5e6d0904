// Package factory classifies a CSV header set as one of the supported
// broker formats and creates the matching extractor.
package factory

import (
	"errors"
	"fmt"
	"strings"

	"tradevault/trade-import/internal/columns"
	"tradevault/trade-import/internal/genericparser"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/parsererror"
	"tradevault/trade-import/internal/robinhoodparser"
	"tradevault/trade-import/internal/tokenizer"
)

// Format identifies the detected input shape.
type Format string

const (
	// FormatGeneric is the one-row-per-closed-trade shape.
	FormatGeneric Format = "generic"
	// FormatRobinhood is the one-row-per-leg shape requiring matching.
	FormatRobinhood Format = "robinhood"
	// FormatAuto means detection was inconclusive; callers attempt the
	// generic extractor and surface a clear error on failure.
	FormatAuto Format = "auto"
)

// DetectFormat classifies a header set. Broker-specific detection wins
// over generic: a Robinhood export also carries date and symbol columns.
func DetectFormat(headers []string) Format {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = columns.NormalizeHeader(h)
	}

	hasToken := func(tokens ...string) bool {
		for _, token := range tokens {
			for _, nh := range normalized {
				if nh != "" && containsToken(nh, token) {
					return true
				}
			}
		}
		return false
	}

	if hasToken("trans_code", "transaction_code") && hasToken("activity_date") {
		return FormatRobinhood
	}
	if hasToken("date") &&
		hasToken("symbol", "ticker", "instrument") &&
		hasToken("pnl", "p_l", "profit", "loss", "gain") {
		return FormatGeneric
	}
	return FormatAuto
}

// GetParser returns a new extractor for the given format, using the
// process-wide default logger.
func GetParser(format Format) (models.TradeParser, error) {
	return GetParserWithLogger(format, logging.GetLogger())
}

// GetParserWithLogger returns a new extractor for the given format with
// the provided logger for dependency injection.
func GetParserWithLogger(format Format, logger logging.Logger) (models.TradeParser, error) {
	switch format {
	case FormatGeneric:
		return genericparser.NewAdapter(logger), nil
	case FormatRobinhood:
		return robinhoodparser.NewAdapter(logger), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// ParseAuto tokenizes raw CSV text, detects its format and dispatches to
// the matching extractor. When detection is inconclusive the generic
// extractor is attempted; if it cannot resolve its required columns the
// caller gets an InvalidFormatError naming every header found.
func ParseAuto(text string, opts models.ParseOptions) (*models.ParseResult, error) {
	table := tokenizer.Tokenize(text)
	if len(table.Headers) == 0 {
		return nil, parsererror.ErrEmptyFile
	}

	format := DetectFormat(table.Headers)
	logging.GetLogger().Debug("Detected CSV format",
		logging.Field{Key: logging.FieldFormat, Value: string(format)})

	switch format {
	case FormatRobinhood:
		return robinhoodparser.Parse(table, opts)
	case FormatGeneric:
		return genericparser.Parse(table, opts)
	default:
		result, err := genericparser.Parse(table, opts)
		var missing *parsererror.MissingColumnError
		if errors.As(err, &missing) {
			return nil, &parsererror.InvalidFormatError{
				Headers: table.Headers,
				Msg:     fmt.Sprintf("no %s column for the generic fallback", missing.Field),
			}
		}
		return result, err
	}
}

// containsToken reports whether a normalized header contains a token.
func containsToken(normalizedHeader, token string) bool {
	return strings.Contains(normalizedHeader, token)
}
