package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cesargp-code/casafresca/internal/assets"
	"github.com/cesargp-code/casafresca/internal/config"
	"github.com/cesargp-code/casafresca/internal/db"
	"github.com/cesargp-code/casafresca/internal/httpapi"
	"github.com/cesargp-code/casafresca/internal/migrate"
	"github.com/cesargp-code/casafresca/internal/modules/climate"
	climateviews "github.com/cesargp-code/casafresca/internal/modules/climate/views"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"staticDir", cfg.StaticDir,
		"assetBaseURL", cfg.AssetBaseURL,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.SQLitePath,
		"readingsTable", cfg.ReadingsTable,
		"maxOpenConns", cfg.MaxOpenConns,
		"maxIdleConns", cfg.MaxIdleConns,
		"connMaxLifetime", cfg.ConnMaxLifetime,
	)
	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	// Only the local SQLite stand-in is migrated here; a hosted readings
	// store owns its own schema.
	if cfg.Driver == config.DriverSQLite {
		if err := migrate.Run(dbConn); err != nil {
			return err
		}
	}

	var ok int
	err = dbConn.QueryRow(`SELECT 1`).Scan(&ok)
	if err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	slog.Info("database connection successful")

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}
	resolver := assets.NewResolver(cfg)
	mux := httpapi.NewMux(dbConn, cfg)
	climate.RegisterFeature(mux, dbConn, cfg, resolver)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
