// Package api is the HTTP surface over the application lifecycle and
// listing services.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"rental-marketplace/internal/metrics"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Applications   *ApplicationController
	Leases         *LeaseController
	Health         *HealthController
	AllowedOrigins []string
}

// NewRouter registers every route and wraps the result with metrics and
// CORS handling.
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc(Health, cfg.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(Metrics, metrics.Handler()).Methods(http.MethodGet)

	router.HandleFunc(Applications, cfg.Applications.ListApplications).Methods(http.MethodGet)
	router.HandleFunc(Applications, cfg.Applications.CreateApplication).Methods(http.MethodPost)
	router.HandleFunc(ApplicationStatus, cfg.Applications.UpdateApplicationStatus).Methods(http.MethodPut)

	router.HandleFunc(PropertyLeases, cfg.Leases.ListPropertyLeases).Methods(http.MethodGet)

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return co.Handler(metrics.InstrumentHandler(router))
}
