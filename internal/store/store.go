// Package store provides the CSV-backed trading journal: the
// existing-trades snapshot used for duplicate detection and the
// persistence sink the importer writes to.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// JournalStore reads and appends journal entries in a single CSV file.
// It implements the importer's Sink interface.
type JournalStore struct {
	Path string
}

// NewJournalStore creates a store over the given journal file path.
func NewJournalStore(path string) *JournalStore {
	return &JournalStore{Path: path}
}

// Load reads every journal entry. A missing journal file is an empty
// journal, not an error.
func (s *JournalStore) Load() ([]models.TradeRecord, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Journal file not found, starting empty",
				logging.Field{Key: logging.FieldFile, Value: s.Path})
			return nil, nil
		}
		return nil, fmt.Errorf("error opening journal file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close journal file")
		}
	}()

	var records []models.TradeRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("error parsing journal file: %w", err)
	}
	return records, nil
}

// SaveTrade appends one record to the journal, creating the file (and
// its directory) on first write.
func (s *JournalStore) SaveTrade(ctx context.Context, record models.TradeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}
	existing = append(existing, record)

	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating journal directory: %w", err)
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("error writing journal file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close journal file")
		}
	}()

	if err := gocsv.MarshalFile(&existing, file); err != nil {
		return fmt.Errorf("error writing journal entries: %w", err)
	}

	log.Debug("Journal entry saved",
		logging.Field{Key: logging.FieldSymbol, Value: record.Symbol},
		logging.Field{Key: logging.FieldFile, Value: s.Path})
	return nil
}
