package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/charts"
	"github.com/jgoulah/powerplot/internal/dataset"
)

var plotCmd = &cobra.Command{
	Use:   "plot [chart]",
	Short: "Render time-series charts for the configured date range",
	Long: `Renders PNG charts from the date-filtered dataset slice.

Available charts: active-power, voltage, sub-metering, panel, all (default)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)
}

// renderers maps chart names to output file names and render functions,
// in the order "all" draws them
var renderers = []struct {
	name   string
	file   string
	render func(*dataset.Table, string) error
}{
	{"active-power", "active_power.png", charts.ActivePower},
	{"voltage", "voltage.png", charts.Voltage},
	{"sub-metering", "sub_metering.png", charts.SubMetering},
	{"panel", "panel.png", charts.Panel},
}

func runPlot(cmd *cobra.Command, args []string) error {
	chart := "all"
	if len(args) > 0 {
		chart = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, r, err := loadFilteredTable(cfg)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		fmt.Printf("No readings found in range %s, nothing to plot\n", r)
		return nil
	}
	fmt.Printf("Loaded %d readings for %s\n", table.Len(), r)

	outDir := getOutputDir(cfg)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	rendered := 0
	for _, rd := range renderers {
		if chart != "all" && chart != rd.name {
			continue
		}

		path := filepath.Join(outDir, rd.file)
		if err := rd.render(table, path); err != nil {
			return fmt.Errorf("rendering %s: %w", rd.name, err)
		}
		fmt.Printf("✓ Wrote %s\n", path)
		rendered++
	}

	if rendered == 0 {
		return fmt.Errorf("unknown chart: %s (available: active-power, voltage, sub-metering, panel, all)", chart)
	}

	return nil
}
