package database

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/powerplot/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testReadings() []models.Reading {
	day1 := time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2007, 2, 2, 0, 0, 0, 0, time.UTC)
	return []models.Reading{
		{
			Timestamp:         day1,
			GlobalActivePower: 1.2,
			Voltage:           240.1,
			SubMetering1:      1,
			SubMetering2:      2,
			SubMetering3:      17,
		},
		{
			Timestamp:         day1.Add(time.Minute),
			GlobalActivePower: 1.8,
			Voltage:           239.9,
			SubMetering1:      0,
			SubMetering2:      1,
			SubMetering3:      18,
		},
		{
			Timestamp:           day2,
			GlobalActivePower:   math.NaN(),
			GlobalReactivePower: math.NaN(),
			Voltage:             math.NaN(),
			GlobalIntensity:     math.NaN(),
			SubMetering1:        math.NaN(),
			SubMetering2:        math.NaN(),
			SubMetering3:        math.NaN(),
		},
	}
}

func TestInsertReadings(t *testing.T) {
	db := openTestDB(t)

	inserted, err := db.InsertReadings(testReadings())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	// Duplicate timestamps are ignored.
	inserted, err = db.InsertReadings(testReadings())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestListReadings(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertReadings(testReadings())
	require.NoError(t, err)

	readings, err := db.ListReadings()
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.Equal(t, time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC), readings[0].Timestamp)
	assert.InDelta(t, 1.2, readings[0].GlobalActivePower, 1e-9)
	assert.InDelta(t, 240.1, readings[0].Voltage, 1e-9)

	// Missing measurements round-trip as NaN, not zero.
	assert.True(t, math.IsNaN(readings[2].GlobalActivePower))
	assert.True(t, math.IsNaN(readings[2].SubMetering3))
}

func TestDailyTotals(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertReadings(testReadings())
	require.NoError(t, err)

	totals, err := db.DailyTotals()
	require.NoError(t, err)
	require.Len(t, totals, 2)

	day1 := totals[0]
	assert.Equal(t, time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC), day1.Date)
	assert.InDelta(t, 3.0/60.0, day1.ActiveKWh, 1e-9) // (1.2 + 1.8) kW-minutes
	assert.InDelta(t, 1.0, day1.SubMetering1, 1e-9)
	assert.InDelta(t, 3.0, day1.SubMetering2, 1e-9)
	assert.InDelta(t, 35.0, day1.SubMetering3, 1e-9)
	assert.Equal(t, 2, day1.Readings)

	// Day with only missing measurements sums to zero but keeps its count.
	day2 := totals[1]
	assert.InDelta(t, 0.0, day2.ActiveKWh, 1e-9)
	assert.Equal(t, 1, day2.Readings)
}

func TestPublishedTracking(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertReadings(testReadings())
	require.NoError(t, err)

	unpublished, err := db.UnpublishedDailyTotals()
	require.NoError(t, err)
	require.Len(t, unpublished, 2)

	require.NoError(t, db.MarkPublished(unpublished[0].Date))

	unpublished, err = db.UnpublishedDailyTotals()
	require.NoError(t, err)
	require.Len(t, unpublished, 1)
	assert.Equal(t, time.Date(2007, 2, 2, 0, 0, 0, 0, time.UTC), unpublished[0].Date)

	// Marking the same day twice is fine.
	require.NoError(t, db.MarkPublished(time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC)))
}
