package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradevault/trade-import/internal/parsererror"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Activity Date", "activity_date"},
		{"P/L", "p_l"},
		{"  Trans  Code ", "trans_code"},
		{"P&L ($)", "p_l"},
		{"Symbol", "symbol"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.input), "input %q", tt.input)
	}
}

func TestResolve(t *testing.T) {
	headers := []string{"Trade Date", "Ticker Symbol", "Realized P/L"}

	idx, ok := Resolve(headers, []string{"date"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = Resolve(headers, []string{"symbol", "ticker"})
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// Header contained in candidate also matches (bidirectional).
	idx, ok = Resolve([]string{"P/L"}, []string{"realized p/l"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = Resolve(headers, []string{"commission"})
	assert.False(t, ok)
}

func TestResolveCandidateOrderIsPriority(t *testing.T) {
	headers := []string{"Exit Price", "Entry Price"}

	idx, ok := Resolve(headers, []string{"entry price", "exit price"})
	require.True(t, ok)
	assert.Equal(t, 1, idx, "first candidate wins even when a later one matches an earlier header")
}

func TestResolveMapAndRequire(t *testing.T) {
	headers := []string{"Date", "Symbol", "P/L", "Qty"}
	resolved := ResolveMap(headers, GenericTable())

	assert.Equal(t, 0, resolved[FieldDate])
	assert.Equal(t, 1, resolved[FieldSymbol])
	assert.Equal(t, 2, resolved[FieldPnL])
	assert.Equal(t, 3, resolved[FieldQuantity])
	assert.Equal(t, NotFound, resolved[FieldExitPrice])

	require.NoError(t, resolved.Require(headers, FieldDate, FieldSymbol, FieldPnL))

	err := resolved.Require(headers, FieldExitPrice)
	require.Error(t, err)
	var missing *parsererror.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, string(FieldExitPrice), missing.Field)
	assert.Equal(t, headers, missing.Headers)
}

func TestColumnMapValue(t *testing.T) {
	resolved := ColumnMap{FieldDate: 0, FieldSymbol: 2, FieldNotes: NotFound}
	row := []string{"2026-01-05", "x"}

	assert.Equal(t, "2026-01-05", resolved.Value(row, FieldDate))
	assert.Equal(t, "", resolved.Value(row, FieldSymbol), "short row reads as empty")
	assert.Equal(t, "", resolved.Value(row, FieldNotes), "unresolved field reads as empty")
}

func TestWithHints(t *testing.T) {
	table := GenericTable().WithHints(map[string][]string{
		"pnl": {"ganancia"},
	})

	resolved := ResolveMap([]string{"Date", "Symbol", "Ganancia"}, table)
	assert.Equal(t, 2, resolved[FieldPnL])
}
