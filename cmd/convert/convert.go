// Package convert handles the CSV conversion command
package convert

import (
	"fmt"
	"os"

	"tradevault/trade-import/cmd/common"
	"tradevault/trade-import/cmd/root"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a broker CSV export to normalized trades",
	Long: `Convert a broker CSV export to a normalized trades CSV.
The input format is detected automatically from the header row.`,
	RunE: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) error {
	opts := common.BuildOptions(root.SharedFlags.DayFirst, root.Cfg.Columns.HintsFile, root.Log)
	result, err := common.ParseInputFile(root.SharedFlags.Input, opts, root.Log)
	if err != nil {
		return err
	}

	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				root.Log.WithError(cerr).Warn("Failed to close output file")
			}
		}()
		out = f
	}

	if err := gocsv.Marshal(&result.Trades, out); err != nil {
		return fmt.Errorf("error writing trades CSV: %w", err)
	}

	for _, reason := range result.Stats.SkippedReasons {
		root.Log.Warn(reason)
	}
	if result.Stats.SkippedCount > models.MaxSkipReasons {
		root.Log.Warn("More rows skipped than reasons shown",
			logging.Field{Key: logging.FieldSkipped, Value: result.Stats.SkippedCount})
	}

	root.Log.Info("Conversion completed successfully!")
	return nil
}
