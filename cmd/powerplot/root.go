package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/config"
	"github.com/jgoulah/powerplot/internal/database"
	"github.com/jgoulah/powerplot/internal/dataset"
	"github.com/jgoulah/powerplot/internal/download"
)

var (
	cfgFile   string
	dataDir   string
	outputDir string
	dbPath    string
	rangeFrom string
	rangeTo   string
)

var rootCmd = &cobra.Command{
	Use:   "powerplot",
	Short: "Chart household electric power consumption",
	Long: `PowerPlot is a CLI tool to explore the UCI household power consumption dataset.
It downloads the dataset, loads a date-bounded slice of it without reading the
whole file, and renders time-series charts. Filtered readings can also be
imported into a local SQLite database and published to MQTT as daily totals.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default is ./data)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "", "chart output directory (default is ./charts)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./data.db)")
	rootCmd.PersistentFlags().StringVar(&rangeFrom, "from", "", "start date YYYY-MM-DD (default from config)")
	rootCmd.PersistentFlags().StringVar(&rangeTo, "to", "", "end date YYYY-MM-DD (default from config)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// getDataDir returns the data directory
func getDataDir(cfg *config.Config) string {
	if dataDir != "" {
		return dataDir
	}
	return cfg.GetDataDir()
}

// getOutputDir returns the chart output directory
func getOutputDir(cfg *config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	return cfg.GetOutputDir()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "data.db"
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// resolveRange builds the date range from flags, falling back to config
func resolveRange(cfg *config.Config) (dataset.DateRange, error) {
	from, to := cfg.GetRange()
	if rangeFrom != "" {
		from = rangeFrom
	}
	if rangeTo != "" {
		to = rangeTo
	}
	return dataset.ParseRange(from, to)
}

// loadFilteredTable loads the configured date window from the local dataset
func loadFilteredTable(cfg *config.Config) (*dataset.Table, dataset.DateRange, error) {
	r, err := resolveRange(cfg)
	if err != nil {
		return nil, dataset.DateRange{}, err
	}

	path := filepath.Join(getDataDir(cfg), download.DataFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, r, fmt.Errorf("dataset not found at %s (run 'powerplot download' first): %w", path, err)
	}

	table, err := dataset.LoadRange(path, r)
	if err != nil {
		return nil, r, fmt.Errorf("loading rows for %s: %w", r, err)
	}

	return table, r, nil
}
