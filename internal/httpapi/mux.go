package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/cesargp-code/casafresca/internal/config"
)

func NewMux(db *sql.DB, cfg config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	return mux
}
