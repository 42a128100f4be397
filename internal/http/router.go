package http

import (
	"net/http"

	"log-insights/internal/analyzers"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// RouterConfig holds the request limits applied by the router.
type RouterConfig struct {
	DefaultThreshold int64
	MaxBodyBytes     int64
}

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, httpLogger loggers.Logger, cfg RouterConfig) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	createAnalysisHandler := NewCreateAnalysisHandler(analysisService, cfg.DefaultThreshold)
	getReportHandler := NewGetReportHandler(analysisService)

	router.With(mwMaxBodyBytes(cfg.MaxBodyBytes)).Post("/analyses", errorHandlingAdapter(createAnalysisHandler))
	router.Get("/analyses/{"+paramReportID+"}", errorHandlingAdapter(getReportHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
