package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/poofware/property-records-service/internal/controllers"
	"github.com/poofware/property-records-service/internal/middleware"
	"github.com/poofware/property-records-service/internal/routes"
	"github.com/poofware/property-records-service/internal/utils"
)

// NewRouter mounts every endpoint and wraps the router in CORS.
func NewRouter(a *App) http.Handler {
	healthCtrl := controllers.NewHealthController(a.RecordService)
	recordsCtrl := controllers.NewRecordsController(a.RecordService)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(a.Metrics), middleware.Recovery())

	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.HandleFunc(routes.Properties, recordsCtrl.CreatePropertyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Properties, recordsCtrl.ListPropertiesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeaseAgreements, recordsCtrl.CreateLeaseAgreementHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LeaseAgreements, recordsCtrl.ListLeaseAgreementsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.MaintenanceRequests, recordsCtrl.CreateMaintenanceRequestHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.MaintenanceRequests, recordsCtrl.ListMaintenanceRequestsHandler).Methods(http.MethodGet)

	var allowedOrigins []string
	if a.Config.AppUrl != "" {
		allowedOrigins = append(allowedOrigins, a.Config.AppUrl)
	}
	if !a.Config.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
