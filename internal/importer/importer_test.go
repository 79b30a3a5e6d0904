package importer_test

import (
	"context"
	"errors"
	"testing"

	"tradevault/trade-import/internal/importer"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvText = "Date,Symbol,PnL\n" +
	"2025-03-12,TSLA,-42.50\n" +
	"2025-03-10,AAPL,7.00\n"

func previewSession(t *testing.T, existing []models.TradeRecord) *importer.Session {
	t.Helper()
	s := importer.NewSession(&logging.MockLogger{})
	require.NoError(t, s.LoadFile(csvText))
	require.NoError(t, s.Parse(models.ParseOptions{}))
	_, err := s.PreparePreview(existing)
	require.NoError(t, err)
	return s
}

func TestSession_HappyPath(t *testing.T) {
	s := importer.NewSession(&logging.MockLogger{})
	assert.Equal(t, importer.StateIdle, s.State())

	require.NoError(t, s.LoadFile(csvText))
	assert.Equal(t, importer.StateFileLoaded, s.State())

	require.NoError(t, s.Parse(models.ParseOptions{}))
	assert.Equal(t, importer.StateParsed, s.State())
	require.Len(t, s.Trades(), 2)

	duplicates, err := s.PreparePreview(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, duplicates)
	assert.Equal(t, importer.StatePreviewReady, s.State())

	sink := store.NewMockSink()
	summary, err := s.Import(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, importer.StateDone, s.State())

	assert.NotEmpty(t, summary.BatchID)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Duplicates)
	require.Len(t, sink.Saved, 2)
	assert.Equal(t, "TSLA", sink.Saved[0].Symbol, "trades import in preview order")
	assert.Equal(t, "AAPL", sink.Saved[1].Symbol)
}

func TestSession_StateGating(t *testing.T) {
	s := importer.NewSession(&logging.MockLogger{})

	assert.Error(t, s.Parse(models.ParseOptions{}), "parse needs a loaded file")

	_, err := s.PreparePreview(nil)
	assert.Error(t, err)

	assert.Error(t, s.ToggleSelected(0))
	assert.Error(t, s.Remove(0))
	assert.Error(t, s.SetNotes(0, "x"))

	_, err = s.Import(context.Background(), store.NewMockSink())
	assert.Error(t, err)

	require.NoError(t, s.LoadFile(csvText))
	assert.Error(t, s.LoadFile(csvText), "cannot reload mid-flight")
}

func TestSession_ParseFailureMovesToError(t *testing.T) {
	s := importer.NewSession(&logging.MockLogger{})
	require.NoError(t, s.LoadFile("Foo,Bar\n1,2\n"))

	assert.Error(t, s.Parse(models.ParseOptions{}))
	assert.Equal(t, importer.StateError, s.State())

	// A fresh file can be loaded after a failure.
	require.NoError(t, s.LoadFile(csvText))
	assert.Equal(t, importer.StateFileLoaded, s.State())
}

func TestSession_DuplicatesAreLockedOut(t *testing.T) {
	existing := []models.TradeRecord{{
		TradeDate: "2025-03-10",
		Symbol:    "AAPL",
		PnL:       decimal.RequireFromString("7.00"),
	}}
	s := previewSession(t, existing)

	trades := s.Trades()
	require.Len(t, trades, 2)
	assert.True(t, trades[1].IsDuplicate)

	err := s.ToggleSelected(1)
	assert.Error(t, err, "duplicates cannot be re-selected")

	// The duplicate can still be removed from the preview.
	require.NoError(t, s.Remove(1))
	assert.Len(t, s.Trades(), 1)
}

func TestSession_ImportSkipsDeselectedAndDuplicates(t *testing.T) {
	existing := []models.TradeRecord{{
		TradeDate: "2025-03-10",
		Symbol:    "AAPL",
		PnL:       decimal.RequireFromString("7.00"),
	}}
	s := previewSession(t, existing)

	sink := store.NewMockSink()
	summary, err := s.Import(context.Background(), sink)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Duplicates)
	require.Len(t, sink.Saved, 1)
	assert.Equal(t, "TSLA", sink.Saved[0].Symbol)
}

func TestSession_EditPreview(t *testing.T) {
	s := previewSession(t, nil)

	require.NoError(t, s.ToggleSelected(0))
	assert.False(t, s.Trades()[0].Selected)
	require.NoError(t, s.ToggleSelected(0))
	assert.True(t, s.Trades()[0].Selected)

	require.NoError(t, s.SetNotes(1, "earnings play"))
	assert.Equal(t, "earnings play", s.Trades()[1].Notes)

	assert.Error(t, s.ToggleSelected(5), "out of range")
	assert.Error(t, s.Remove(-1), "out of range")
}

func TestSession_ImportHaltsOnSinkFailure(t *testing.T) {
	s := previewSession(t, nil)

	sink := store.NewMockSink()
	sink.FailAt = 1
	sink.Err = errors.New("disk full")

	_, err := s.Import(context.Background(), sink)

	var importErr *importer.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 1, importErr.Completed)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, importer.StateError, s.State())

	// The record persisted before the failure stays persisted.
	require.Len(t, sink.Saved, 1)
}

func TestSession_ImportCancelled(t *testing.T) {
	s := previewSession(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := store.NewMockSink()
	_, err := s.Import(ctx, sink)

	var importErr *importer.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 0, importErr.Completed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.Saved)
}

func TestSession_ReloadAfterDone(t *testing.T) {
	s := previewSession(t, nil)
	_, err := s.Import(context.Background(), store.NewMockSink())
	require.NoError(t, err)

	require.NoError(t, s.LoadFile(csvText), "a finished session accepts the next file")
	assert.Equal(t, importer.StateFileLoaded, s.State())
	assert.Empty(t, s.Trades(), "loading clears the previous preview")
}
