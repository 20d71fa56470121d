package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/powerplot/internal/publisher"
	"github.com/jgoulah/powerplot/pkg/models"
)

var publishAll bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish daily totals to MQTT",
	Long:  `Reads imported daily consumption totals from the database and publishes them to the configured MQTT broker.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "Force republish all days (ignore published flag)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	pub, err := publisher.New(cfg.MQTT, cfg.GetTopicPrefix())
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var totals []models.DailyTotal
	if publishAll {
		totals, err = db.DailyTotals()
	} else {
		totals, err = db.UnpublishedDailyTotals()
	}
	if err != nil {
		return fmt.Errorf("listing daily totals: %w", err)
	}

	if len(totals) == 0 {
		if publishAll {
			fmt.Println("No data found (run 'powerplot import' first)")
		} else {
			fmt.Println("No unpublished days found")
		}
		return nil
	}

	fmt.Printf("Publishing %d days...\n", len(totals))
	published := 0
	for i, total := range totals {
		fmt.Printf("[%d/%d] Publishing %s (%.2f kWh)... ", i+1, len(totals), total.Date.Format("2006-01-02"), total.ActiveKWh)
		if err := pub.Publish(total); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		// Mark day as published in database
		if err := db.MarkPublished(total.Date); err != nil {
			fmt.Printf("✓ (warning: failed to mark as published: %v)\n", err)
		} else {
			fmt.Printf("✓\n")
		}
		published++
	}

	fmt.Printf("\nSuccessfully published %d/%d days\n", published, len(totals))
	return nil
}
