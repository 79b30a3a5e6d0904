package main

import (
	"fmt"
	"os"
	"path/filepath"

	"tradevault/trade-import/cmd/convert"
	"tradevault/trade-import/cmd/detect"
	importcmd "tradevault/trade-import/cmd/import"
	"tradevault/trade-import/cmd/root"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables before any command configuration runs.
	loadEnvSilently()

	root.Init()
	importcmd.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
	root.Cmd.AddCommand(importcmd.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try the project root when run from a subdirectory
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
