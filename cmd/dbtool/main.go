package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/cesargp-code/casafresca/internal/config"
	"github.com/cesargp-code/casafresca/internal/db"
	"github.com/cesargp-code/casafresca/internal/migrate"
)

const (
	seedDays = 7
	seedStep = 30 * time.Minute
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("db close", "err", closeErr)
		}
	}()

	switch os.Args[1] {
	case "migrate":
		if cfg.Driver != config.DriverSQLite {
			fmt.Fprintf(os.Stderr, "migrate manages the local sqlite store only (DB_DRIVER=%s)\n", cfg.Driver)
			os.Exit(1)
		}
		if err := migrate.Run(conn); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migrations applied")
	case "seed":
		n, err := seedReadings(conn, cfg.ReadingsTable)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("seeded %d readings into %s\n", n, cfg.ReadingsTable)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <command>\n  migrate  apply pending schema migrations (sqlite store only)\n  seed     replace the readings table with a fresh demo series\n", os.Args[0])
}

// seedReadings wipes the table and inserts a week of half-hourly readings
// ending now, so the dashboard has data for both range views right away.
func seedReadings(conn *sql.DB, table string) (int, error) {
	if _, err := conn.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}

	// $N placeholders work for both mattn/go-sqlite3 and pgx.
	insert := fmt.Sprintf(
		"INSERT INTO %s (id, ts, outdoor_temp, indoor_temp, temp_differential) VALUES ($1, $2, $3, $4, $5)",
		table,
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	end := time.Now().UTC().Truncate(time.Minute)
	start := end.Add(-seedDays * 24 * time.Hour)

	count := 0
	for ts := start; !ts.After(end); ts = ts.Add(seedStep) {
		outdoor, indoor := demoTemps(ts, rng)

		var differential any
		if count%5 == 0 {
			// The hosted store has gaps in this column; mirror that.
			differential = nil
		} else {
			differential = outdoor.Sub(indoor).Round(1).String()
		}

		_, err := conn.Exec(insert,
			uuid.NewString(),
			ts.Format(time.RFC3339Nano),
			outdoor.String(),
			indoor.String(),
			differential,
		)
		if err != nil {
			return count, fmt.Errorf("insert reading at %s: %w", ts.Format(time.RFC3339), err)
		}
		count++
	}

	return count, nil
}

// demoTemps fakes a summer day: outdoor swings hard around mid-afternoon,
// indoor lags behind and stays damped.
func demoTemps(ts time.Time, rng *rand.Rand) (decimal.Decimal, decimal.Decimal) {
	hours := float64(ts.Hour()) + float64(ts.Minute())/60

	outdoor := 24 + 7*math.Sin((hours-9)/24*2*math.Pi) + rng.Float64() - 0.5
	indoor := 23 + 2.5*math.Sin((hours-12)/24*2*math.Pi) + rng.Float64()*0.4 - 0.2

	return decimal.NewFromFloat(outdoor).Round(1), decimal.NewFromFloat(indoor).Round(1)
}
