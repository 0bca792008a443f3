package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdro-dev/wheelscreener/internal/api/handlers"
	"github.com/pdro-dev/wheelscreener/internal/metrics"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// Handlers collects everything the router mounts
type Handlers struct {
	Market    *handlers.MarketHandler
	Screening *handlers.ScreeningHandler
	Metrics   *handlers.MetricsHandler
	User      *handlers.UserHandler
}

// NewRouter creates and configures the HTTP router
func NewRouter(h Handlers, collector *metrics.Collector, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Prometheus exposition; the JSON /api/metrics stays the primary
	// counters endpoint
	r.Handle("/metrics/prometheus", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/instruments", h.Market.GetInstruments).Methods("POST")
	api.HandleFunc("/quotes", h.Market.GetQuotes).Methods("POST")
	api.HandleFunc("/fundamentals/{symbol}", h.Market.GetFundamentals).Methods("GET")
	api.HandleFunc("/screening", h.Screening.Screen).Methods("POST")
	api.HandleFunc("/metrics", h.Metrics.Get).Methods("GET")
	api.HandleFunc("/user", h.User.Get).Methods("GET")

	// Apply middleware
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(log, collector))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "wheelscreener-api",
		"timestamp": time.Now().UTC(),
		"endpoints": []string{
			"/health",
			"/api/instruments",
			"/api/quotes",
			"/api/fundamentals/{symbol}",
			"/api/screening",
			"/api/metrics",
			"/api/user",
		},
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs HTTP requests and feeds the request counters.
// Only /api paths count toward the metrics snapshot.
func loggingMiddleware(log *logger.Logger, collector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if strings.HasPrefix(r.URL.Path, "/api") {
				collector.ObserveRequest(duration)
			}

			log.WithFields(map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"duration":   duration.String(),
				"request_id": w.Header().Get("X-Request-ID"),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
