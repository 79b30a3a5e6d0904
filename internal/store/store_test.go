package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(symbol string) models.TradeRecord {
	return models.TradeRecord{
		Symbol:     symbol,
		TradeType:  "sell",
		AssetType:  "call",
		Quantity:   1,
		Price:      decimal.RequireFromString("0.59"),
		TotalValue: decimal.RequireFromString("0.59"),
		PnL:        decimal.RequireFromString("7.00"),
		Notes:      "Bought 1 @ $0.52 avg, sold 1 @ $0.59 avg",
		TradeDate:  "2025-01-22",
	}
}

func TestJournalStore_LoadMissingFile(t *testing.T) {
	s := store.NewJournalStore(filepath.Join(t.TempDir(), "journal.csv"))

	records, err := s.Load()
	require.NoError(t, err, "a missing journal is an empty journal")
	assert.Empty(t, records)
}

func TestJournalStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	s := store.NewJournalStore(path)

	require.NoError(t, s.SaveTrade(context.Background(), sampleRecord("AAPL $150 CALL")))
	require.NoError(t, s.SaveTrade(context.Background(), sampleRecord("TSLA")))

	records, err := s.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL $150 CALL", records[0].Symbol)
	assert.Equal(t, "TSLA", records[1].Symbol)
	assert.Equal(t, "7", records[0].PnL.String())
	assert.Equal(t, "2025-01-22", records[0].TradeDate)
}

func TestJournalStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.csv")
	s := store.NewJournalStore(path)

	require.NoError(t, s.SaveTrade(context.Background(), sampleRecord("AAPL")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestJournalStore_SaveCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	s := store.NewJournalStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SaveTrade(ctx, sampleRecord("AAPL"))
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written after cancellation")
}

func TestJournalStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, []byte("not,a\njournal"), 0600))

	s := store.NewJournalStore(path)
	_, err := s.Load()
	assert.Error(t, err)
}

func TestLoadColumnHints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column_hints.yaml")
	content := "date:\n  - handelsdatum\nsymbol:\n  - wertpapier\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	hints, err := store.LoadColumnHints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"handelsdatum"}, hints["date"])
	assert.Equal(t, []string{"wertpapier"}, hints["symbol"])
}

func TestLoadColumnHints_MissingFile(t *testing.T) {
	hints, err := store.LoadColumnHints(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, hints)
}

func TestLoadColumnHints_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column_hints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date: [unclosed"), 0600))

	_, err := store.LoadColumnHints(path)
	assert.Error(t, err)
}

func TestMockSink_FailAt(t *testing.T) {
	sink := store.NewMockSink()
	sink.FailAt = 1
	sink.Err = assert.AnError

	require.NoError(t, sink.SaveTrade(context.Background(), sampleRecord("A")))
	assert.ErrorIs(t, sink.SaveTrade(context.Background(), sampleRecord("B")), assert.AnError)
	assert.Len(t, sink.Saved, 1)
}
