package climate

import (
	"database/sql"
	"net/http"

	"github.com/cesargp-code/casafresca/internal/assets"
	"github.com/cesargp-code/casafresca/internal/config"
	"github.com/cesargp-code/casafresca/internal/modules/climate/controller"
	"github.com/cesargp-code/casafresca/internal/modules/climate/repository"
	"github.com/cesargp-code/casafresca/internal/modules/climate/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, cfg config.Config, resolver *assets.Resolver) {
	climateRepository := repository.NewRepository(db, cfg.ReadingsTable)
	climateService := service.NewService(climateRepository)
	climateController := controller.NewClimateController(climateRepository, climateService, resolver)
	climateController.RegisterRoutes(mux)
}
