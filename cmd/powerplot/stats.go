package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for the configured date range",
	Long:  `Loads the date-filtered dataset slice and prints per-column summary statistics.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, r, err := loadFilteredTable(cfg)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		fmt.Printf("No readings found in range %s\n", r)
		return nil
	}

	df := table.DataFrame()
	if df.Err != nil {
		return fmt.Errorf("building dataframe: %w", df.Err)
	}

	fmt.Printf("%d readings in range %s\n\n", table.Len(), r)
	fmt.Println(df.Describe())
	return nil
}
