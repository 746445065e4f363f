// Package assets resolves static asset names to publicly fetchable URLs.
package assets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cesargp-code/casafresca/internal/config"
)

// Resolver maps asset names to URLs. With ASSET_BASE_URL configured the
// assets are assumed hosted there; otherwise names resolve against the
// local static directory.
type Resolver struct {
	baseURL   string
	staticDir string
}

func NewResolver(cfg config.Config) *Resolver {
	return &Resolver{
		baseURL:   strings.TrimSuffix(cfg.AssetBaseURL, "/"),
		staticDir: cfg.StaticDir,
	}
}

// PublicURL returns the URL for a static asset, or "" when the name is
// unsafe or the file does not exist locally. Callers render nothing for ""
// rather than failing the page over a missing image.
func (r *Resolver) PublicURL(name string) string {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return ""
	}
	if r.baseURL != "" {
		return r.baseURL + "/" + name
	}
	if _, err := os.Stat(filepath.Join(r.staticDir, name)); err != nil {
		return ""
	}
	return "/static/" + name
}
