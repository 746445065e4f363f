package controller

import (
	"time"
)

const defaultChartRangeKey = "24h"

type chartRange struct {
	Window time.Duration
	Label  string
}

var chartRanges = map[string]chartRange{
	"24h": {Window: 24 * time.Hour, Label: "Last 24 hours"},
	"7d":  {Window: 7 * 24 * time.Hour, Label: "Last 7 days"},
}

// resolveChartRange maps a range query value onto a known window. Unknown
// or absent keys fall back to the 24h default; the resolved key is returned
// so links and toggles reflect what was actually rendered.
func resolveChartRange(key string) (string, chartRange) {
	if info, ok := chartRanges[key]; ok {
		return key, info
	}
	return defaultChartRangeKey, chartRanges[defaultChartRangeKey]
}
