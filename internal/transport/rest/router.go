package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandaudit/internal/cache"
	"brandaudit/internal/logger"
	"brandaudit/internal/transport/rest/handler"
	"brandaudit/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	Analyzer          handler.Analyzer
	RateLimiter       cache.RateLimiter // nil disables rate limiting
	Logger            logger.Logger
	CORSOrigins       []string
	TrustedProxies    middleware.TrustedProxies // peers allowed to set X-Forwarded-For
	StaticDir         string                    // empty disables static files
	MaxBodyBytes      int64
	KnowledgeDegraded bool
	Generator         string
}

// NewRouter creates the HTTP router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	analysisHandler := handler.NewAnalysisHandler(c.Analyzer, c.Logger, c.MaxBodyBytes)
	healthHandler := &handler.HealthHandler{KnowledgeDegraded: c.KnowledgeDegraded, Generator: c.Generator}

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(c.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(c.CORSOrigins))

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	if c.RateLimiter != nil {
		api.Use(middleware.RateLimit(c.RateLimiter, c.TrustedProxies, c.Logger))
	}
	api.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST", "OPTIONS")

	if c.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(c.StaticDir))).Methods("GET", "HEAD")
	}

	return r
}
