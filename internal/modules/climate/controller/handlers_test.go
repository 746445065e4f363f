package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cesargp-code/casafresca/internal/assets"
	"github.com/cesargp-code/casafresca/internal/config"
	"github.com/cesargp-code/casafresca/internal/modules/climate/service"
	"github.com/cesargp-code/casafresca/internal/modules/climate/types"
	"github.com/cesargp-code/casafresca/internal/modules/climate/views"
)

type mockRepo struct {
	readings  []types.Reading
	listErr   error
	latest    *types.Reading
	latestErr error
}

func (m *mockRepo) ListReadings() ([]types.Reading, error) {
	return m.readings, m.listErr
}

func (m *mockRepo) LatestReading() (*types.Reading, error) {
	return m.latest, m.latestErr
}

func newTestController(t *testing.T, repo *mockRepo) *climateControllerImpl {
	t.Helper()
	resolver := assets.NewResolver(config.Config{StaticDir: t.TempDir()})
	ctrl := NewClimateController(repo, service.NewService(repo), resolver).(*climateControllerImpl)
	return ctrl
}

func sampleReadings() []types.Reading {
	now := time.Now().UTC()
	return []types.Reading{
		{ID: "a", Time: now.Add(-23 * time.Hour), OutdoorTemp: "20.0", IndoorTemp: "22.5"},
		{ID: "b", Time: now.Add(-2 * time.Hour), OutdoorTemp: "23.0", IndoorTemp: "22.8"},
		{ID: "c", Time: now, OutdoorTemp: "26.0", IndoorTemp: "24.0"},
	}
}

func Test_handleDashboard(t *testing.T) {
	t.Run("returns 404 when path is not /", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{})
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.URL.Path = "/dashboard"
		rec := httptest.NewRecorder()

		ctrl.handleDashboard(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("returns 500 and error body when render fails", func(t *testing.T) {
		// Render fails when templates are not loaded yet.
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		ctrl.handleDashboard(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
		if !strings.Contains(rec.Body.String(), "failed to render page") {
			t.Errorf("body = %q; expected 'failed to render page'", rec.Body.String())
		}
	})

	t.Run("returns 200 with HTML when templates loaded", func(t *testing.T) {
		if err := views.LoadTemplates(); err != nil {
			t.Fatalf("LoadTemplates: %v", err)
		}
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		ctrl.handleDashboard(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
			t.Errorf("Content-Type = %q; want text/html; charset=utf-8", ct)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "26.0") || !strings.Contains(body, "24.0") {
			t.Errorf("body missing latest temperatures; got %q", body)
		}
		if !strings.Contains(body, "Close the windows") {
			t.Errorf("body missing recommendation; got %q", body)
		}
		if !strings.Contains(body, "/chart.svg?range=24h") {
			t.Errorf("body missing chart URL; got %q", body)
		}
	})

	t.Run("degrades to placeholders when the store fails", func(t *testing.T) {
		if err := views.LoadTemplates(); err != nil {
			t.Fatalf("LoadTemplates: %v", err)
		}
		ctrl := newTestController(t, &mockRepo{listErr: errors.New("store unreachable")})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		ctrl.handleDashboard(rec, req)

		// Never an error page: the dashboard renders with placeholder values.
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "–") {
			t.Errorf("body missing placeholder dash; got %q", body)
		}
		if strings.Contains(body, "NaN") || strings.Contains(body, "unreachable") {
			t.Errorf("body leaks failure detail; got %q", body)
		}
		if !strings.Contains(body, "Windows can stay open") {
			t.Errorf("body missing default recommendation; got %q", body)
		}
	})

	t.Run("uses the 7d window when requested", func(t *testing.T) {
		if err := views.LoadTemplates(); err != nil {
			t.Fatalf("LoadTemplates: %v", err)
		}
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/?range=7d", nil)
		rec := httptest.NewRecorder()

		ctrl.handleDashboard(rec, req)

		if !strings.Contains(rec.Body.String(), "/chart.svg?range=7d") {
			t.Errorf("body missing 7d chart URL; got %q", rec.Body.String())
		}
	})
}

func Test_handleChart(t *testing.T) {
	t.Run("returns SVG for readings", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/chart.svg?range=24h", nil)
		rec := httptest.NewRecorder()

		ctrl.handleChart(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("Content-Type = %q; want image/svg+xml", ct)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Error("body is not SVG")
		}
	})

	t.Run("returns placeholder SVG when the store fails", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{listErr: errors.New("down")})
		req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
		rec := httptest.NewRecorder()

		ctrl.handleChart(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Error("placeholder body is not SVG")
		}
	})
}

func Test_handleReadings(t *testing.T) {
	t.Run("returns windowed readings", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings?range=24h", nil)
		rec := httptest.NewRecorder()

		ctrl.handleReadings(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var resp struct {
			RangeKey string          `json:"rangeKey"`
			Count    int             `json:"count"`
			Items    []types.Reading `json:"items"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.RangeKey != "24h" {
			t.Errorf("rangeKey = %q; want 24h", resp.RangeKey)
		}
		if resp.Count != 3 || len(resp.Items) != 3 {
			t.Errorf("count = %d items = %d; want 3", resp.Count, len(resp.Items))
		}
		for i := 1; i < len(resp.Items); i++ {
			if resp.Items[i].Time.Before(resp.Items[i-1].Time) {
				t.Error("items are not ascending by time")
			}
		}
	})

	t.Run("unknown range falls back to 24h", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings?range=42y", nil)
		rec := httptest.NewRecorder()

		ctrl.handleReadings(rec, req)

		var resp struct {
			RangeKey string `json:"rangeKey"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.RangeKey != "24h" {
			t.Errorf("rangeKey = %q; want 24h fallback", resp.RangeKey)
		}
	})

	t.Run("returns 500 when the store fails", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{listErr: errors.New("down")})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil)
		rec := httptest.NewRecorder()

		ctrl.handleReadings(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}

func Test_handleLatest(t *testing.T) {
	t.Run("returns the newest reading", func(t *testing.T) {
		latest := &types.Reading{ID: "c", Time: time.Now().UTC(), OutdoorTemp: "26.0", IndoorTemp: "24.0"}
		ctrl := newTestController(t, &mockRepo{latest: latest})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/latest", nil)
		rec := httptest.NewRecorder()

		ctrl.handleLatest(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var got types.Reading
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.ID != "c" || got.OutdoorTemp != "26.0" {
			t.Errorf("reading = %+v; want id=c outdoor=26.0", got)
		}
	})

	t.Run("returns 404 when no readings exist", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/latest", nil)
		rec := httptest.NewRecorder()

		ctrl.handleLatest(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("returns 500 on query failure", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{latestErr: errors.New("down")})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/latest", nil)
		rec := httptest.NewRecorder()

		ctrl.handleLatest(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}

func Test_handleOverview(t *testing.T) {
	t.Run("returns the assembled overview", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{readings: sampleReadings()})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/overview?range=7d", nil)
		rec := httptest.NewRecorder()

		ctrl.handleOverview(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var ov service.Overview
		if err := json.NewDecoder(rec.Body).Decode(&ov); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if ov.Status != service.StatusData {
			t.Errorf("status = %q; want %q", ov.Status, service.StatusData)
		}
		if ov.OutdoorTemp != "26.0" || ov.IndoorTemp != "24.0" {
			t.Errorf("temps = %q/%q; want 26.0/24.0", ov.OutdoorTemp, ov.IndoorTemp)
		}
		if ov.Recommendation != "close" {
			t.Errorf("recommendation = %q; want close", ov.Recommendation)
		}
		if ov.RangeKey != "7d" {
			t.Errorf("rangeKey = %q; want 7d", ov.RangeKey)
		}
	})

	t.Run("reports failed status without failing the request", func(t *testing.T) {
		ctrl := newTestController(t, &mockRepo{listErr: errors.New("store unreachable")})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
		rec := httptest.NewRecorder()

		ctrl.handleOverview(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var ov service.Overview
		if err := json.NewDecoder(rec.Body).Decode(&ov); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if ov.Status != service.StatusFailed {
			t.Errorf("status = %q; want %q", ov.Status, service.StatusFailed)
		}
		if ov.OutdoorTemp != "–" || ov.IndoorTemp != "–" {
			t.Errorf("temps = %q/%q; want placeholders", ov.OutdoorTemp, ov.IndoorTemp)
		}
	})
}
