// Package plot renders the two-series temperature chart as SVG.
package plot

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cesargp-code/casafresca/internal/modules/climate/service"
)

const (
	chartWidth  = 720
	chartHeight = 280
)

var (
	outdoorColor = drawing.Color{R: 235, G: 129, B: 39, A: 255}
	indoorColor  = chart.ColorBlue
)

// Render draws outdoor and indoor series over time into w. The window picks
// the x-axis label layout: clock time inside a day, weekday and day beyond.
// With fewer than two points the chart library cannot draw a line, so a
// quiet placeholder SVG goes out instead; Render never fails the page for
// lack of data.
func Render(w io.Writer, points []service.Point, window time.Duration) error {
	if len(points) < 2 {
		_, err := io.WriteString(w, emptySVG)
		return err
	}

	times := make([]time.Time, len(points))
	outdoor := make([]float64, len(points))
	indoor := make([]float64, len(points))
	for i, p := range points {
		times[i] = p.Time
		outdoor[i] = p.Outdoor
		indoor[i] = p.Indoor
	}

	ch := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 12, Right: 12, Bottom: 24},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(timeLayoutFor(window)),
		},
		YAxis: chart.YAxis{
			Name:  "°C",
			Range: yRange(outdoor, indoor),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Outdoor",
				XValues: times,
				YValues: outdoor,
				Style:   chart.Style{StrokeColor: outdoorColor, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Indoor",
				XValues: times,
				YValues: indoor,
				Style:   chart.Style{StrokeColor: indoorColor, StrokeWidth: 2},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.SVG, w)
}

func timeLayoutFor(window time.Duration) string {
	if window <= 24*time.Hour {
		return "15:04"
	}
	return "Mon 02"
}

// yRange pads the observed extent so the lines never hug the frame, and
// keeps a minimum span so a flat series still renders.
func yRange(seriesList ...[]float64) *chart.ContinuousRange {
	min, max := seriesList[0][0], seriesList[0][0]
	for _, series := range seriesList {
		for _, v := range series {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max-min < 2 {
		mid := (max + min) / 2
		min, max = mid-1, mid+1
	}
	return &chart.ContinuousRange{Min: min - 1, Max: max + 1}
}

var emptySVG = fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#fafaf5"/>
<text x="50%%" y="50%%" text-anchor="middle" fill="#9a9a8f" font-family="sans-serif" font-size="14">no readings in this window</text>
</svg>
`, chartWidth, chartHeight, chartWidth, chartHeight)
