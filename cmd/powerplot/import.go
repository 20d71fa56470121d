package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the configured date range into the local database",
	Long: `Loads the date-filtered dataset slice and stores the readings in the local
SQLite database. Already imported timestamps are skipped.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, r, err := loadFilteredTable(cfg)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		fmt.Printf("No readings found in range %s, nothing to import\n", r)
		return nil
	}

	readings, err := table.Readings()
	if err != nil {
		return fmt.Errorf("converting rows: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	inserted, err := db.InsertReadings(readings)
	if err != nil {
		return fmt.Errorf("storing readings: %w", err)
	}

	fmt.Printf("✓ Imported %d new readings (%d in range %s, duplicates skipped)\n", inserted, len(readings), r)
	return nil
}
