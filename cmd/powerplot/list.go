package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/database"
)

var listReadings bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported daily totals",
	Long:  `Displays daily consumption totals aggregated from the imported readings.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listReadings, "readings", false, "List individual readings instead of daily totals")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if listReadings {
		return listAllReadings(db)
	}

	totals, err := db.DailyTotals()
	if err != nil {
		return fmt.Errorf("listing daily totals: %w", err)
	}

	if len(totals) == 0 {
		fmt.Println("No data found (run 'powerplot import' first)")
		return nil
	}

	fmt.Println("\nDaily Totals:")
	fmt.Println("------------------------------------------------------------------")
	fmt.Printf("%-12s  %10s  %8s  %8s  %8s  %8s\n", "Date", "kWh", "Sub 1", "Sub 2", "Sub 3", "Readings")
	fmt.Println("------------------------------------------------------------------")

	var totalKWh float64
	for _, t := range totals {
		fmt.Printf("%-12s  %10.2f  %8.0f  %8.0f  %8.0f  %8d\n",
			t.Date.Format("2006-01-02"), t.ActiveKWh, t.SubMetering1, t.SubMetering2, t.SubMetering3, t.Readings)
		totalKWh += t.ActiveKWh
	}

	fmt.Println("------------------------------------------------------------------")
	fmt.Printf("Total: %.2f kWh (%d days)\n", totalKWh, len(totals))

	return nil
}

func listAllReadings(db *database.DB) error {
	readings, err := db.ListReadings()
	if err != nil {
		return fmt.Errorf("listing readings: %w", err)
	}

	if len(readings) == 0 {
		fmt.Println("No data found (run 'powerplot import' first)")
		return nil
	}

	fmt.Println("\nReadings:")
	fmt.Println("--------------------------------------------------------------------------")
	fmt.Printf("%-20s  %8s  %8s  %8s  %6s  %6s  %6s\n", "Timestamp", "kW", "Voltage", "Amps", "Sub 1", "Sub 2", "Sub 3")
	fmt.Println("--------------------------------------------------------------------------")

	for _, r := range readings {
		fmt.Printf("%-20s  %8s  %8s  %8s  %6s  %6s  %6s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			fmtMeasure(r.GlobalActivePower, 3),
			fmtMeasure(r.Voltage, 2),
			fmtMeasure(r.GlobalIntensity, 1),
			fmtMeasure(r.SubMetering1, 0),
			fmtMeasure(r.SubMetering2, 0),
			fmtMeasure(r.SubMetering3, 0))
	}

	fmt.Println("--------------------------------------------------------------------------")
	fmt.Printf("%d readings\n", len(readings))

	return nil
}

// fmtMeasure formats a measurement, showing missing values as "?" like the
// source file does
func fmtMeasure(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "?"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
