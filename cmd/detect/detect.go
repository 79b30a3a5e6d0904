// Package detect handles the format detection command
package detect

import (
	"fmt"
	"os"
	"sort"

	"tradevault/trade-import/cmd/root"
	"tradevault/trade-import/internal/columns"
	"tradevault/trade-import/internal/factory"
	"tradevault/trade-import/internal/parsererror"
	"tradevault/trade-import/internal/tokenizer"

	"github.com/spf13/cobra"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the format of a broker CSV export",
	Long: `Detect the format of a broker CSV export from its header row
and report which columns were resolved.`,
	RunE: detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("no input file specified, use --input")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	table := tokenizer.Tokenize(string(data))
	if len(table.Headers) == 0 {
		return parsererror.ErrEmptyFile
	}

	format := factory.DetectFormat(table.Headers)
	fmt.Printf("Format: %s\n", format)
	fmt.Printf("Rows:   %d\n", len(table.Rows))

	candidates := columns.GenericTable()
	if format == factory.FormatRobinhood {
		candidates = columns.BrokerTable()
	}
	resolved := columns.ResolveMap(table.Headers, candidates)

	fields := make([]string, 0, len(resolved))
	for field, idx := range resolved {
		if idx == columns.NotFound {
			continue
		}
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	fmt.Println("Columns:")
	for _, field := range fields {
		idx := resolved[columns.Field(field)]
		fmt.Printf("  %-14s -> %q (column %d)\n", field, table.Headers[idx], idx)
	}

	return nil
}
