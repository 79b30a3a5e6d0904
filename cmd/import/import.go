// Package importcmd handles the trade import command
package importcmd

import (
	"errors"
	"fmt"
	"os"

	"tradevault/trade-import/cmd/common"
	"tradevault/trade-import/cmd/root"
	"tradevault/trade-import/internal/importer"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import trades from a broker CSV export into the journal",
	Long: `Import trades from a broker CSV export into the local trade journal.
Trades already present in the journal are flagged as duplicates and skipped.`,
	RunE: importFunc,
}

func importFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return common.ErrNoInput
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	journalFile := root.JournalFile
	if journalFile == "" {
		journalFile = root.Cfg.Journal.File
	}
	journal := store.NewJournalStore(journalFile)

	existing, err := journal.Load()
	if err != nil {
		return fmt.Errorf("error loading journal: %w", err)
	}

	session := importer.NewSession(root.Log)
	if err := session.LoadFile(string(data)); err != nil {
		return err
	}

	opts := common.BuildOptions(root.SharedFlags.DayFirst, root.Cfg.Columns.HintsFile, root.Log)
	if err := session.Parse(opts); err != nil {
		return err
	}

	duplicates, err := session.PreparePreview(existing)
	if err != nil {
		return err
	}

	stats := session.Stats()
	root.Log.Info("Preview ready",
		logging.Field{Key: logging.FieldFormat, Value: stats.Format},
		logging.Field{Key: logging.FieldCount, Value: len(session.Trades())},
		logging.Field{Key: "duplicates", Value: duplicates})
	for _, reason := range stats.SkippedReasons {
		root.Log.Warn(reason)
	}

	summary, err := session.Import(cmd.Context(), journal)
	if err != nil {
		var importErr *importer.ImportError
		if errors.As(err, &importErr) {
			root.Log.WithError(importErr.Err).Error("Import halted",
				logging.Field{Key: logging.FieldCount, Value: importErr.Completed})
		}
		return err
	}

	fmt.Printf("Batch:      %s\n", summary.BatchID)
	fmt.Printf("Imported:   %d\n", summary.Imported)
	fmt.Printf("Duplicates: %d\n", summary.Duplicates)
	fmt.Printf("Skipped:    %d\n", summary.Stats.SkippedCount)

	root.Log.Info("Import completed successfully!",
		logging.Field{Key: logging.FieldBatchID, Value: summary.BatchID})
	return nil
}

// Init registers the import command flags
func Init() {
	Cmd.Flags().StringVar(&root.JournalFile, "journal", "", "Journal CSV file (defaults to the configured path)")
}
