package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonny/ledger/internal/api/handlers"
	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/pkg/config"
	"github.com/wonny/ledger/pkg/logger"
)

// Deps are the components the router serves
type Deps struct {
	Store     *dataset.Store
	Refresher *dataset.Refresher
	Overlay   http.Handler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(cfg *config.Config, deps Deps, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	companyHandler := handlers.NewCompanyHandler(deps.Store, cfg.PodcastURL, log)
	reloadHandler := handlers.NewReloadHandler(deps.Refresher, deps.Store, log)
	dashboardHandler := handlers.NewDashboardHandler(deps.Store, cfg.PodcastURL, log)

	// Health check
	r.HandleFunc("/health", handlers.Health(deps.Store)).Methods("GET")

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(rateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log))

	// Company endpoints
	api.HandleFunc("/companies", companyHandler.List).Methods("GET")
	api.HandleFunc("/companies/{ticker}", companyHandler.Get).Methods("GET")
	api.HandleFunc("/companies/{ticker}/card", companyHandler.Card).Methods("GET")

	// Overlay state
	api.HandleFunc("/sort/toggle", handlers.ToggleSort).Methods("POST")

	// Dataset
	api.HandleFunc("/reload", reloadHandler.Reload).Methods("POST")

	// Overlay websocket
	if deps.Overlay != nil {
		r.Handle("/ws/overlay", deps.Overlay).Methods("GET")
	}

	// Dashboard
	r.HandleFunc("/", dashboardHandler.Render).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(metricsMiddleware())
	r.Use(recoveryMiddleware(log))

	return r
}
