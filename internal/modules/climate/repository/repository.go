package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/cesargp-code/casafresca/internal/modules/climate/types"
)

//go:embed sql/list-readings.sql
var listReadingsSQL string

//go:embed sql/latest-reading.sql
var latestReadingSQL string

// ReadingsRepository is the read path onto the hosted readings table.
// The dashboard never writes; seeding the local stand-in happens in dbtool.
type ReadingsRepository interface {
	// ListReadings returns every reading ordered ascending by timestamp.
	// Windowing happens in the caller, not in the store.
	ListReadings() ([]types.Reading, error)
	// LatestReading returns the newest reading, or nil when the table is empty.
	LatestReading() (*types.Reading, error)
}

type repositoryImpl struct {
	db        *sql.DB
	listSQL   string
	latestSQL string
}

// NewRepository binds the queries to the configured table name. The name is
// validated as a bare identifier by config before it gets here.
func NewRepository(db *sql.DB, table string) ReadingsRepository {
	return &repositoryImpl{
		db:        db,
		listSQL:   fmt.Sprintf(listReadingsSQL, table),
		latestSQL: fmt.Sprintf(latestReadingSQL, table),
	}
}

func (r *repositoryImpl) ListReadings() ([]types.Reading, error) {
	rows, err := r.db.Query(r.listSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close readings rows", "error", err)
		}
	}()
	return scanReadings(rows)
}

func (r *repositoryImpl) LatestReading() (*types.Reading, error) {
	var (
		rec types.Reading
		ts  string
	)
	err := r.db.QueryRow(r.latestSQL).Scan(&rec.ID, &ts, &rec.OutdoorTemp, &rec.IndoorTemp, &rec.TempDifferential)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := parseTimestamp(ts)
	if err != nil {
		return nil, err
	}
	rec.Time = t
	return &rec, nil
}

func scanReadings(rows *sql.Rows) ([]types.Reading, error) {
	var out []types.Reading
	for rows.Next() {
		var (
			rec types.Reading
			ts  string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.OutdoorTemp, &rec.IndoorTemp, &rec.TempDifferential); err != nil {
			return nil, err
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		rec.Time = t
		out = append(out, rec)
	}
	return out, rows.Err()
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		var err2 error
		t, err2 = time.Parse(time.RFC3339, ts)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: RFC3339Nano: %w; RFC3339: %w", ts, err, err2)
		}
	}
	return t, nil
}
