package database

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jgoulah/powerplot/pkg/models"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		ts TEXT NOT NULL,
		global_active_power REAL,
		global_reactive_power REAL,
		voltage REAL,
		global_intensity REAL,
		sub_metering_1 REAL,
		sub_metering_2 REAL,
		sub_metering_3 REAL,
		created_at TEXT NOT NULL,
		UNIQUE(ts)
	);
	CREATE INDEX IF NOT EXISTS idx_readings_date ON readings(date);
	CREATE TABLE IF NOT EXISTS published_days (
		date TEXT PRIMARY KEY,
		published_at TEXT NOT NULL
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// nullable converts a measurement to its SQL value, storing missing
// readings as NULL rather than zero
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func scanned(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// InsertReadings inserts a batch of readings inside one transaction,
// ignoring duplicates. Returns the number of newly inserted rows.
func (db *DB) InsertReadings(readings []models.Reading) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT OR IGNORE INTO readings
		(date, ts, global_active_power, global_reactive_power, voltage,
		 global_intensity, sub_metering_1, sub_metering_2, sub_metering_3, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, r := range readings {
		res, err := stmt.Exec(
			r.Timestamp.Format("2006-01-02"),
			r.Timestamp.Format("2006-01-02 15:04:05"),
			nullable(r.GlobalActivePower),
			nullable(r.GlobalReactivePower),
			nullable(r.Voltage),
			nullable(r.GlobalIntensity),
			nullable(r.SubMetering1),
			nullable(r.SubMetering2),
			nullable(r.SubMetering3),
			createdAt,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting reading %s: %w", r.Timestamp.Format(time.RFC3339), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return inserted, nil
}

// ListReadings retrieves all stored readings, ordered by timestamp
func (db *DB) ListReadings() ([]models.Reading, error) {
	query := `
	SELECT ts, global_active_power, global_reactive_power, voltage,
	       global_intensity, sub_metering_1, sub_metering_2, sub_metering_3
	FROM readings
	ORDER BY ts ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var results []models.Reading
	for rows.Next() {
		var r models.Reading
		var ts string
		var gap, grp, volt, gi, sm1, sm2, sm3 sql.NullFloat64

		if err := rows.Scan(&ts, &gap, &grp, &volt, &gi, &sm1, &sm2, &sm3); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Timestamp, err = time.Parse("2006-01-02 15:04:05", ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		r.GlobalActivePower = scanned(gap)
		r.GlobalReactivePower = scanned(grp)
		r.Voltage = scanned(volt)
		r.GlobalIntensity = scanned(gi)
		r.SubMetering1 = scanned(sm1)
		r.SubMetering2 = scanned(sm2)
		r.SubMetering3 = scanned(sm3)

		results = append(results, r)
	}

	return results, rows.Err()
}

// DailyTotals aggregates stored readings per calendar day. Active energy
// is derived from minute-resolution kW readings (kW * 1/60 h = kWh);
// missing readings are excluded from the sums.
func (db *DB) DailyTotals() ([]models.DailyTotal, error) {
	return db.dailyTotals(false)
}

// UnpublishedDailyTotals returns daily totals for days not yet published
func (db *DB) UnpublishedDailyTotals() ([]models.DailyTotal, error) {
	return db.dailyTotals(true)
}

func (db *DB) dailyTotals(unpublishedOnly bool) ([]models.DailyTotal, error) {
	query := `
	SELECT date,
	       COALESCE(SUM(global_active_power), 0) / 60.0,
	       COALESCE(SUM(sub_metering_1), 0),
	       COALESCE(SUM(sub_metering_2), 0),
	       COALESCE(SUM(sub_metering_3), 0),
	       COUNT(*)
	FROM readings
	`
	if unpublishedOnly {
		query += `WHERE date NOT IN (SELECT date FROM published_days)
	`
	}
	query += `GROUP BY date ORDER BY date ASC`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying daily totals: %w", err)
	}
	defer rows.Close()

	var results []models.DailyTotal
	for rows.Next() {
		var t models.DailyTotal
		var dateStr string

		if err := rows.Scan(&dateStr, &t.ActiveKWh, &t.SubMetering1, &t.SubMetering2, &t.SubMetering3, &t.Readings); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		t.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}

		results = append(results, t)
	}

	return results, rows.Err()
}

// MarkPublished records that a day's totals have been published
func (db *DB) MarkPublished(date time.Time) error {
	query := `INSERT OR REPLACE INTO published_days (date, published_at) VALUES (?, ?)`
	_, err := db.conn.Exec(query, date.Format("2006-01-02"), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("marking day as published: %w", err)
	}
	return nil
}
