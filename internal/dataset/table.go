package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/jgoulah/powerplot/pkg/models"
)

// Missing is the marker used for absent measurements in the source file.
const Missing = "?"

// Column names as they appear in the source file header.
const (
	ColDate                = "Date"
	ColTime                = "Time"
	ColGlobalActivePower   = "Global_active_power"
	ColGlobalReactivePower = "Global_reactive_power"
	ColVoltage             = "Voltage"
	ColGlobalIntensity     = "Global_intensity"
	ColSubMetering1        = "Sub_metering_1"
	ColSubMetering2        = "Sub_metering_2"
	ColSubMetering3        = "Sub_metering_3"
)

// Table is a date-filtered slice of the dataset. Columns holds the header
// names in file order; each row has exactly one field per column. Tables
// are built once by LoadRange and never mutated.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) columnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", name)
}

// Timestamps combines the Date and Time columns into time.Time values,
// one per row.
func (t *Table) Timestamps() ([]time.Time, error) {
	dateIdx, err := t.columnIndex(ColDate)
	if err != nil {
		return nil, err
	}
	timeIdx, err := t.columnIndex(ColTime)
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, len(t.Rows))
	for i, row := range t.Rows {
		stamp := row[dateIdx] + " " + row[timeIdx]
		ts, err := time.Parse(dateLayout+" 15:04:05", stamp)
		if err != nil {
			return nil, &ParseError{Row: i, Value: stamp, Err: err}
		}
		out[i] = ts
	}
	return out, nil
}

// Column returns a measurement column as floats. Missing markers become
// NaN; anything else unparseable is a ParseError.
func (t *Table) Column(name string) ([]float64, error) {
	idx, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if row[idx] == Missing {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, &ParseError{Row: i, Value: row[idx], Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// Readings converts the table into typed measurement records.
func (t *Table) Readings() ([]models.Reading, error) {
	timestamps, err := t.Timestamps()
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]float64, 7)
	for _, name := range []string{
		ColGlobalActivePower, ColGlobalReactivePower, ColVoltage,
		ColGlobalIntensity, ColSubMetering1, ColSubMetering2, ColSubMetering3,
	} {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[name] = values
	}

	readings := make([]models.Reading, len(t.Rows))
	for i := range t.Rows {
		readings[i] = models.Reading{
			Timestamp:           timestamps[i],
			GlobalActivePower:   cols[ColGlobalActivePower][i],
			GlobalReactivePower: cols[ColGlobalReactivePower][i],
			Voltage:             cols[ColVoltage][i],
			GlobalIntensity:     cols[ColGlobalIntensity][i],
			SubMetering1:        cols[ColSubMetering1][i],
			SubMetering2:        cols[ColSubMetering2][i],
			SubMetering3:        cols[ColSubMetering3][i],
		}
	}
	return readings, nil
}

// DataFrame converts the table into a gota dataframe with the missing
// marker mapped to NaN, for summary statistics.
func (t *Table) DataFrame() dataframe.DataFrame {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns)
	records = append(records, t.Rows...)
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{Missing}),
	)
}
