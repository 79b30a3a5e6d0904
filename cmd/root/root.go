// Package root contains the root command for the application
package root

import (
	"tradevault/trade-import/internal/config"
	"tradevault/trade-import/internal/genericparser"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/robinhoodparser"
	"tradevault/trade-import/internal/store"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	DayFirst bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg holds the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "trade-import",
		Short: "A CLI tool to import broker CSV exports into a trade journal.",
		Long: `trade-import reads trade activity CSV exports from brokers,
matches option and stock legs into closed trades with realized P&L,
and appends them to a local trade journal.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to trade-import!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Warn("Failed to load configuration, using defaults")
				cfg = &config.Config{}
				cfg.Log.Level = "info"
				cfg.Log.Format = "text"
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)
			logging.SetLogger(Log)

			// Set the configured logger for all parsers
			genericparser.SetLogger(Log)
			robinhoodparser.SetLogger(Log)
			store.SetLogger(Log)

			// The config file sets the date convention unless the flag
			// was given explicitly.
			if !cmd.Flags().Changed("day-first") {
				SharedFlags.DayFirst = cfg.Dates.DayFirst
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific import command flags
	JournalFile string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.DayFirst, "day-first", false, "Parse ambiguous slash dates as DD/MM/YYYY")
}
