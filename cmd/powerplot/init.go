package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Creates a config file populated with the default dataset URL, directories,
and date range, ready to edit. Refuses to overwrite an existing file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	cfg := &config.Config{
		DatasetURL: config.DefaultDatasetURL,
		DataDir:    "data",
		OutputDir:  "charts",
		Range:      config.RangeConfig{From: "2007-02-01", To: "2007-02-02"},
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
