package controller

import (
	"net/http"

	"github.com/cesargp-code/casafresca/internal/assets"
	"github.com/cesargp-code/casafresca/internal/modules/climate/repository"
	"github.com/cesargp-code/casafresca/internal/modules/climate/service"
)

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	repository repository.ReadingsRepository
	service    *service.Service
	assets     *assets.Resolver
}

func NewClimateController(repository repository.ReadingsRepository, service *service.Service, assets *assets.Resolver) ClimateController {
	return &climateControllerImpl{repository: repository, service: service, assets: assets}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleDashboard)
	mux.HandleFunc("GET /chart.svg", c.handleChart)
	mux.HandleFunc("GET /api/v1/readings", c.handleReadings)
	mux.HandleFunc("GET /api/v1/readings/latest", c.handleLatest)
	mux.HandleFunc("GET /api/v1/overview", c.handleOverview)
}
