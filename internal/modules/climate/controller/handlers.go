package controller

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/cesargp-code/casafresca/internal/modules/climate/analysis"
	"github.com/cesargp-code/casafresca/internal/modules/climate/plot"
	"github.com/cesargp-code/casafresca/internal/modules/climate/service"
	"github.com/cesargp-code/casafresca/internal/modules/climate/views"
	"github.com/cesargp-code/casafresca/internal/utils"
)

func (c *climateControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rangeKey, info := c.resolvedRange(r)
	ov := c.service.Overview(time.Now().UTC(), rangeKey, info.Window)

	data := c.dashboardViewModel(ov)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderDashboard(w, &data); err != nil {
		slog.Error("dashboard template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

func (c *climateControllerImpl) handleChart(w http.ResponseWriter, r *http.Request) {
	rangeKey, info := c.resolvedRange(r)
	ov := c.service.Overview(time.Now().UTC(), rangeKey, info.Window)

	var buf bytes.Buffer
	if err := plot.Render(&buf, ov.Series, info.Window); err != nil {
		slog.Error("chart render failed", "range", rangeKey, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("chart: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handleReadings(w http.ResponseWriter, r *http.Request) {
	rangeKey, info := c.resolvedRange(r)

	res := c.service.Fetch()
	if res.Status == service.StatusFailed {
		utils.WriteError(w, http.StatusInternalServerError, "failed to load readings")
		return
	}
	items := analysis.FilterWindow(res.Readings, time.Now().UTC(), info.Window)

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"rangeKey": rangeKey,
		"count":    len(items),
		"items":    items,
	})
}

func (c *climateControllerImpl) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := c.repository.LatestReading()
	if err != nil {
		slog.Error("latest reading query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load latest reading")
		return
	}
	if latest == nil {
		utils.WriteError(w, http.StatusNotFound, "no readings yet")
		return
	}
	utils.WriteJSON(w, http.StatusOK, latest)
}

func (c *climateControllerImpl) handleOverview(w http.ResponseWriter, r *http.Request) {
	rangeKey, info := c.resolvedRange(r)
	ov := c.service.Overview(time.Now().UTC(), rangeKey, info.Window)
	utils.WriteJSON(w, http.StatusOK, ov)
}

func (c *climateControllerImpl) resolvedRange(r *http.Request) (string, chartRange) {
	requested := r.URL.Query().Get("range")
	rangeKey, info := resolveChartRange(requested)
	if requested != "" && requested != rangeKey {
		slog.Warn("invalid range, using default", "range", requested)
	}
	return rangeKey, info
}

func (c *climateControllerImpl) dashboardViewModel(ov service.Overview) views.DashboardData {
	data := views.DashboardData{
		OutdoorTemp:    ov.OutdoorTemp,
		IndoorTemp:     ov.IndoorTemp,
		Recommendation: ov.Recommendation,
		RangeKey:       ov.RangeKey,
		ChartURL:       "/chart.svg?range=" + ov.RangeKey,
		MascotURL:      c.assets.PublicURL("mascot.svg"),
	}
	if ov.UpdatedAt != nil {
		data.UpdatedAt = ov.UpdatedAt.Format("Jan 2, 15:04")
	}
	icon := "window-open.svg"
	if ov.Recommendation == "close" {
		icon = "window-closed.svg"
	}
	data.WindowIconURL = c.assets.PublicURL(icon)

	if ov.OutdoorDelta != nil {
		data.OutdoorDelta = &views.DeltaView{Label: ov.OutdoorDelta.Label, Trend: ov.OutdoorDelta.Trend}
	}
	if ov.IndoorDelta != nil {
		data.IndoorDelta = &views.DeltaView{Label: ov.IndoorDelta.Label, Trend: ov.IndoorDelta.Trend}
	}
	return data
}
