package genericparser_test

import (
	"testing"

	"tradevault/trade-import/internal/genericparser"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/parsererror"
	"tradevault/trade-import/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, text string, opts models.ParseOptions) (*models.ParseResult, error) {
	t.Helper()
	return genericparser.Parse(tokenizer.Tokenize(text), opts)
}

func TestParse_OneTradePerRow(t *testing.T) {
	text := "Date,Symbol,PnL,Quantity,Type\n" +
		"2025-03-10,aapl,150.257,2,Call\n" +
		"2025-03-12,TSLA,-42.50,,Stock\n"

	result, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 2)

	// Newest first.
	tsla := result.Trades[0]
	assert.Equal(t, "2025-03-12", tsla.Date)
	assert.Equal(t, "TSLA", tsla.Symbol)
	assert.Equal(t, "-42.5", tsla.PnL.String())
	assert.Equal(t, 1, tsla.Quantity, "empty quantity defaults to 1")
	assert.Equal(t, models.AssetStock, tsla.AssetType)
	assert.True(t, tsla.Selected)

	aapl := result.Trades[1]
	assert.Equal(t, "AAPL", aapl.Symbol, "symbols are uppercased")
	assert.Equal(t, "150.26", aapl.PnL.String(), "P&L is rounded to the cent")
	assert.Equal(t, 2, aapl.Quantity)
	assert.Equal(t, models.AssetCall, aapl.AssetType)
	assert.Equal(t, "sell", aapl.Side)
	assert.Equal(t, aapl.Date, aapl.CloseDate)

	assert.Equal(t, "generic", result.Stats.Format)
	assert.Equal(t, 2, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.ParsedCount)
	assert.Equal(t, 0, result.Stats.SkippedCount)
}

func TestParse_SkipsBadRows(t *testing.T) {
	text := "Date,Symbol,PnL\n" +
		"not-a-date,AAPL,10.00\n" +
		"2025-03-10,,10.00\n" +
		"2025-03-11,MSFT,5.00\n"

	result, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, "MSFT", result.Trades[0].Symbol)

	assert.Equal(t, 2, result.Stats.SkippedCount)
	require.Len(t, result.Stats.SkippedReasons, 2)
	assert.Equal(t, `Row 2: Invalid date "not-a-date"`, result.Stats.SkippedReasons[0])
	assert.Equal(t, "Row 3: Missing symbol", result.Stats.SkippedReasons[1])
}

func TestParse_ExplicitZeroQuantityIsKept(t *testing.T) {
	text := "Date,Symbol,PnL,Quantity\n" +
		"2025-03-11,MSFT,1.00,0\n" +
		"2025-03-10,AAPL,1.00,\n"

	result, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 2)

	assert.Equal(t, 0, result.Trades[0].Quantity, "a literal 0 stays 0")
	assert.Equal(t, 1, result.Trades[1].Quantity, "an empty cell defaults to 1")
}

func TestSetLogger_RoutesRowDiagnostics(t *testing.T) {
	mock := &logging.MockLogger{}
	genericparser.SetLogger(mock)
	defer genericparser.SetLogger(logging.GetLogger())

	text := "Date,Symbol,PnL\n" +
		"not-a-date,AAPL,10.00\n" +
		"2025-03-11,MSFT,5.00\n"
	_, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)

	assert.True(t, mock.HasMessage("Skipping row: unparseable date"))
	assert.True(t, mock.HasMessage("Parsed generic trade CSV"))
}

func TestAdapter_UsesInjectedLogger(t *testing.T) {
	mock := &logging.MockLogger{}
	adapter := genericparser.NewAdapter(mock)

	text := "Date,Symbol,PnL\n" +
		"not-a-date,AAPL,10.00\n" +
		"2025-03-11,MSFT,5.00\n"
	_, err := adapter.Parse(tokenizer.Tokenize(text), models.ParseOptions{})
	require.NoError(t, err)

	assert.True(t, mock.HasMessage("Skipping row: unparseable date"))
	assert.True(t, mock.HasMessage("Parsed generic trade CSV"))
}

func TestParse_GarbagePnLDefaultsToZero(t *testing.T) {
	text := "Date,Symbol,PnL\n" +
		"2025-03-10,AAPL,n/a\n"

	result, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)
	assert.True(t, result.Trades[0].PnL.IsZero())
	assert.Equal(t, 1, result.Stats.ParsedCount, "garbage P&L does not skip the row")
}

func TestParse_PriceFromExitThenEntry(t *testing.T) {
	text := "Date,Symbol,PnL,Entry Price,Exit Price\n" +
		"2025-03-10,AAPL,1.00,2.50,3.75\n" +
		"2025-03-11,MSFT,1.00,2.50,\n"

	result, err := parseText(t, text, models.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 2)

	assert.Equal(t, "2.5", result.Trades[0].Price.String(), "entry price fills in when exit is missing")
	assert.Equal(t, "3.75", result.Trades[1].Price.String(), "exit price wins when both are present")
}

func TestParse_DayFirstDates(t *testing.T) {
	text := "Date,Symbol,PnL\n" +
		"03/04/2025,AAPL,1.00\n"

	usResult, err := parseText(t, text, models.ParseOptions{DayFirst: false})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", usResult.Trades[0].Date)

	euResult, err := parseText(t, text, models.ParseOptions{DayFirst: true})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-03", euResult.Trades[0].Date)
}

func TestParse_ColumnHints(t *testing.T) {
	text := "Handelsdatum,Wertpapier,Ergebnis\n" +
		"2025-03-10,AAPL,12.00\n"

	opts := models.ParseOptions{Hints: map[string][]string{
		"date":   {"handelsdatum"},
		"symbol": {"wertpapier"},
		"pnl":    {"ergebnis"},
	}}
	result, err := parseText(t, text, opts)
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, "AAPL", result.Trades[0].Symbol)
	assert.Equal(t, "12", result.Trades[0].PnL.String())
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := parseText(t, "", models.ParseOptions{})
	assert.ErrorIs(t, err, parsererror.ErrEmptyFile)
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	_, err := parseText(t, "Date,Symbol\n2025-03-10,AAPL\n", models.ParseOptions{})

	var missing *parsererror.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "pnl", missing.Field)
}

func TestParse_AllRowsSkipped(t *testing.T) {
	text := "Date,Symbol,PnL\n" +
		"bad,AAPL,1.00\n" +
		"worse,MSFT,2.00\n"

	_, err := parseText(t, text, models.ParseOptions{})

	var noTrades *parsererror.NoTradesError
	require.ErrorAs(t, err, &noTrades)
	assert.Len(t, noTrades.Reasons, 2)
}
