package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHintsFile is the column-hints file name searched for in the
// standard config locations when no explicit path is configured.
const DefaultHintsFile = "column_hints.yaml"

// LoadColumnHints reads user-supplied candidate header names per
// semantic field, for brokers whose headers the built-in tables do not
// know. An empty path searches the standard locations; a missing file
// simply yields no hints.
func LoadColumnHints(path string) (map[string][]string, error) {
	if path == "" {
		found, err := findConfigFile(DefaultHintsFile)
		if err != nil {
			return nil, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Column hints file not found")
			return nil, nil
		}
		return nil, fmt.Errorf("error reading column hints file: %w", err)
	}

	var hints map[string][]string
	if err := yaml.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("error parsing column hints file: %w", err)
	}
	return hints, nil
}

// findConfigFile looks for a configuration file in standard locations.
func findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".trade-import", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
