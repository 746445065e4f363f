// Package analysis derives the dashboard figures from a fetched reading
// sequence: latest values, the delta against the reading nearest 24 hours
// back, the window open/close recommendation, and the chart time window.
// Everything here is a pure function over an ascending slice of readings.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesargp-code/casafresca/internal/modules/climate/types"
)

// DeltaLookback is how far behind the current reading the comparison
// reading is searched for.
const DeltaLookback = 24 * time.Hour

// Field selects which temperature series an operation applies to.
type Field int

const (
	FieldOutdoor Field = iota
	FieldIndoor
)

func (f Field) String() string {
	if f == FieldIndoor {
		return "indoor"
	}
	return "outdoor"
}

// Temp parses the selected temperature field of a reading.
func Temp(r types.Reading, f Field) (decimal.Decimal, error) {
	if f == FieldIndoor {
		return ParseTemp(r.IndoorTemp)
	}
	return ParseTemp(r.OutdoorTemp)
}

// Latest returns the last element of an ascending sequence. ok is false
// when the sequence is empty.
func Latest(readings []types.Reading) (types.Reading, bool) {
	if len(readings) == 0 {
		return types.Reading{}, false
	}
	return readings[len(readings)-1], true
}

// NearestPastIndex returns the index of the reading whose timestamp is
// closest to target, scanning the full sequence once. Ties resolve to the
// earlier index so results are reproducible. Returns -1 for an empty
// sequence.
func NearestPastIndex(readings []types.Reading, target time.Time) int {
	if len(readings) == 0 {
		return -1
	}
	best := 0
	bestDist := absDuration(readings[0].Time.Sub(target))
	for i := 1; i < len(readings); i++ {
		d := absDuration(readings[i].Time.Sub(target))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// DeltaVs24hAgo reports how much the selected field changed between the
// current reading and the reading nearest DeltaLookback before it. The
// delta is current minus past, so a positive value means warmer than
// yesterday. ok is false when fewer than two readings exist or either
// temperature fails to parse; callers must then show no delta at all.
func DeltaVs24hAgo(readings []types.Reading, current types.Reading, f Field) (decimal.Decimal, bool) {
	if len(readings) < 2 {
		return decimal.Decimal{}, false
	}
	cur, err := Temp(current, f)
	if err != nil {
		return decimal.Decimal{}, false
	}
	idx := NearestPastIndex(readings, current.Time.Add(-DeltaLookback))
	if idx < 0 {
		return decimal.Decimal{}, false
	}
	past, err := Temp(readings[idx], f)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return cur.Sub(past), true
}

// Trend classifies a delta for display. The classification uses the same
// one-decimal rounding as FormatDelta so the label always agrees with the
// figure next to it.
type Trend int

const (
	TrendSteady Trend = iota
	TrendWarmer
	TrendCooler
)

func (t Trend) String() string {
	switch t {
	case TrendWarmer:
		return "warmer"
	case TrendCooler:
		return "cooler"
	default:
		return "steady"
	}
}

func TrendOf(delta decimal.Decimal) Trend {
	r := delta.Round(1)
	switch {
	case r.IsPositive():
		return TrendWarmer
	case r.IsNegative():
		return TrendCooler
	default:
		return TrendSteady
	}
}

// Recommendation is the binary window suggestion derived from the latest
// reading.
type Recommendation int

const (
	RecommendOpen Recommendation = iota
	RecommendClose
)

func (r Recommendation) String() string {
	if r == RecommendClose {
		return "close"
	}
	return "open"
}

// Recommend suggests closing the windows only when outdoor is strictly
// warmer than indoor; at equality the windows may stay open.
func Recommend(outdoor, indoor decimal.Decimal) Recommendation {
	if outdoor.GreaterThan(indoor) {
		return RecommendClose
	}
	return RecommendOpen
}

// FilterWindow keeps the readings from the trailing window ending at now.
// The sequence must be ascending by time; the result is a subslice, so the
// filter is cheap to rerun on every render. The boundary is inclusive:
// a reading exactly window old stays in.
func FilterWindow(readings []types.Reading, now time.Time, window time.Duration) []types.Reading {
	if len(readings) == 0 || window <= 0 {
		return readings
	}
	cutoff := now.Add(-window)
	i := sort.Search(len(readings), func(i int) bool {
		return !readings[i].Time.Before(cutoff)
	})
	return readings[i:]
}
