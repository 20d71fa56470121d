package models

import "time"

// Reading represents a single minute-resolution power measurement.
// Missing source values are NaN, never zero.
type Reading struct {
	Timestamp           time.Time `json:"timestamp"`
	GlobalActivePower   float64   `json:"global_active_power"`   // kilowatts
	GlobalReactivePower float64   `json:"global_reactive_power"` // kilovars
	Voltage             float64   `json:"voltage"`               // volts
	GlobalIntensity     float64   `json:"global_intensity"`      // amperes
	SubMetering1        float64   `json:"sub_metering_1"`        // watt-hours (kitchen)
	SubMetering2        float64   `json:"sub_metering_2"`        // watt-hours (laundry)
	SubMetering3        float64   `json:"sub_metering_3"`        // watt-hours (water heater / AC)
}

// DailyTotal aggregates one calendar day of readings.
type DailyTotal struct {
	Date         time.Time `json:"date"`
	ActiveKWh    float64   `json:"active_kwh"`
	SubMetering1 float64   `json:"sub_metering_1"`
	SubMetering2 float64   `json:"sub_metering_2"`
	SubMetering3 float64   `json:"sub_metering_3"`
	Readings     int       `json:"readings"`
}
