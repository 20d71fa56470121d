package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/download"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download and extract the power consumption dataset",
	Long: `Fetches the household power consumption zip archive and extracts it into
the data directory. Does nothing if the dataset is already present.`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path, err := download.Ensure(cfg.GetDatasetURL(), getDataDir(cfg))
	if err != nil {
		return fmt.Errorf("preparing dataset: %w", err)
	}

	fmt.Printf("✓ Dataset ready at %s\n", path)
	return nil
}
