// Package common provides shared helpers for the commands
package common

import (
	"errors"
	"fmt"
	"os"

	"tradevault/trade-import/internal/factory"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
	"tradevault/trade-import/internal/store"
)

// ErrNoInput is returned when a command that needs an input file is run without one.
var ErrNoInput = errors.New("no input file specified, use --input")

// BuildOptions assembles the parse options from the date convention flag
// and the optional column hints file.
func BuildOptions(dayFirst bool, hintsFile string, log logging.Logger) models.ParseOptions {
	hints, err := store.LoadColumnHints(hintsFile)
	if err != nil {
		log.WithError(err).WithField(logging.FieldFile, hintsFile).Warn("Ignoring unreadable column hints file")
		hints = nil
	}
	return models.ParseOptions{
		DayFirst: dayFirst,
		Hints:    hints,
	}
}

// ParseInputFile reads and parses a broker CSV export with automatic
// format detection.
func ParseInputFile(inputFile string, opts models.ParseOptions, log logging.Logger) (*models.ParseResult, error) {
	if inputFile == "" {
		return nil, ErrNoInput
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}

	log.WithField(logging.FieldFile, inputFile).Info("Parsing broker CSV export")

	result, err := factory.ParseAuto(string(data), opts)
	if err != nil {
		return nil, err
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFormat, Value: result.Stats.Format},
		logging.Field{Key: logging.FieldCount, Value: result.Stats.ParsedCount},
		logging.Field{Key: logging.FieldSkipped, Value: result.Stats.SkippedCount},
	).Info("Parse completed")

	return result, nil
}
