package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
)

var dashboardTmpl *template.Template

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	dashboardTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// DeltaView is one "vs. 24h ago" badge. Trend doubles as the CSS class
// suffix (warmer, cooler, steady).
type DeltaView struct {
	Label string
	Trend string
}

// DashboardData is the view model for the dashboard page. Every numeric
// field arrives pre-formatted; absent values are already the placeholder
// dash, so the template never decides how to degrade.
type DashboardData struct {
	OutdoorTemp    string
	IndoorTemp     string
	OutdoorDelta   *DeltaView
	IndoorDelta    *DeltaView
	Recommendation string // "open" or "close"
	RangeKey       string // selected chart window toggle
	ChartURL       string
	UpdatedAt      string // empty when no reading exists
	MascotURL      string // empty renders no mascot, not a broken page
	WindowIconURL  string
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}
