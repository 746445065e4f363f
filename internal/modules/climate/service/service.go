// Package service assembles the dashboard overview from the readings store.
// Store and parse failures never escape as errors here: every failure mode
// collapses into a typed status so the surface can degrade to placeholders
// while tests can still assert which path was taken.
package service

import (
	"log/slog"
	"time"

	"github.com/cesargp-code/casafresca/internal/modules/climate/analysis"
	"github.com/cesargp-code/casafresca/internal/modules/climate/repository"
	"github.com/cesargp-code/casafresca/internal/modules/climate/types"
)

// Status says how a store fetch ended.
type Status string

const (
	StatusData   Status = "data"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// FetchResult is the typed outcome of one store fetch. Err carries the
// reason on StatusFailed; it is logged, never rendered.
type FetchResult struct {
	Status   Status
	Readings []types.Reading
	Err      error
}

// Delta is one "vs. 24h ago" annotation, formatted for display.
type Delta struct {
	Label string `json:"label"`
	Trend string `json:"trend"`
}

// Point is one chart sample. Readings whose temperatures do not parse are
// dropped from the series instead of plotting a hole.
type Point struct {
	Time    time.Time `json:"time"`
	Outdoor float64   `json:"outdoor"`
	Indoor  float64   `json:"indoor"`
}

// Overview is everything the dashboard shows for one request. All numeric
// fields are pre-formatted strings so a missing or malformed value is
// already the placeholder by the time rendering happens.
type Overview struct {
	Status         Status     `json:"status"`
	OutdoorTemp    string     `json:"outdoorTemp"`
	IndoorTemp     string     `json:"indoorTemp"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	OutdoorDelta   *Delta     `json:"outdoorDelta,omitempty"`
	IndoorDelta    *Delta     `json:"indoorDelta,omitempty"`
	Recommendation string     `json:"recommendation"`
	RangeKey       string     `json:"rangeKey"`
	Series         []Point    `json:"series"`
}

const (
	fetchKey = "readings"
	fetchTTL = 30 * time.Second
)

type Service struct {
	repository repository.ReadingsRepository
	fetches    *cache[FetchResult]
}

func NewService(repository repository.ReadingsRepository) *Service {
	return &Service{
		repository: repository,
		fetches:    newCache[FetchResult](fetchTTL),
	}
}

// Fetch returns the full reading sequence as a typed outcome. Successful
// fetches are memoized briefly so every panel of one page load shares a
// single store roundtrip; failures are not cached, the next request retries.
func (s *Service) Fetch() FetchResult {
	if res, ok := s.fetches.Get(fetchKey); ok {
		return res
	}
	readings, err := s.repository.ListReadings()
	if err != nil {
		slog.Error("readings fetch failed", "error", err)
		return FetchResult{Status: StatusFailed, Err: err}
	}
	res := FetchResult{Status: StatusData, Readings: readings}
	if len(readings) == 0 {
		res.Status = StatusEmpty
	}
	s.fetches.Set(fetchKey, res)
	return res
}

// Overview derives the dashboard state for the given chart window. now is
// the render-time wall clock; the window filter is relative to it, not to
// the latest reading.
func (s *Service) Overview(now time.Time, rangeKey string, window time.Duration) Overview {
	res := s.Fetch()
	ov := Overview{
		Status:         res.Status,
		OutdoorTemp:    analysis.Placeholder,
		IndoorTemp:     analysis.Placeholder,
		Recommendation: analysis.RecommendOpen.String(),
		RangeKey:       rangeKey,
		Series:         []Point{},
	}

	latest, ok := analysis.Latest(res.Readings)
	if !ok {
		return ov
	}
	t := latest.Time
	ov.UpdatedAt = &t
	ov.OutdoorTemp = analysis.FormatTemp(latest.OutdoorTemp)
	ov.IndoorTemp = analysis.FormatTemp(latest.IndoorTemp)

	out, outErr := analysis.Temp(latest, analysis.FieldOutdoor)
	in, inErr := analysis.Temp(latest, analysis.FieldIndoor)
	if outErr == nil && inErr == nil {
		ov.Recommendation = analysis.Recommend(out, in).String()
	}

	if d, ok := analysis.DeltaVs24hAgo(res.Readings, latest, analysis.FieldOutdoor); ok {
		ov.OutdoorDelta = &Delta{Label: analysis.FormatDelta(d), Trend: analysis.TrendOf(d).String()}
	}
	if d, ok := analysis.DeltaVs24hAgo(res.Readings, latest, analysis.FieldIndoor); ok {
		ov.IndoorDelta = &Delta{Label: analysis.FormatDelta(d), Trend: analysis.TrendOf(d).String()}
	}

	ov.Series = buildSeries(analysis.FilterWindow(res.Readings, now, window))
	return ov
}

func buildSeries(readings []types.Reading) []Point {
	pts := make([]Point, 0, len(readings))
	for _, r := range readings {
		out, err := analysis.Temp(r, analysis.FieldOutdoor)
		if err != nil {
			continue
		}
		in, err := analysis.Temp(r, analysis.FieldIndoor)
		if err != nil {
			continue
		}
		pts = append(pts, Point{Time: r.Time, Outdoor: out.InexactFloat64(), Indoor: in.InexactFloat64()})
	}
	return pts
}
