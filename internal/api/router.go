package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/limejump/corona-analytics/internal/api/handlers"
	"github.com/limejump/corona-analytics/pkg/logger"
	"github.com/limejump/corona-analytics/pkg/metrics"
)

// NewRouter creates and configures the HTTP router.
// reg may be nil, in which case /metrics is not served.
func NewRouter(mpans *handlers.MPANHandler, companies *handlers.CompanyHandler, reg *metrics.Registry, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if reg != nil {
		r.Handle("/metrics", reg.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Metering points
	api.HandleFunc("/mpans", mpans.ListMPANs).Methods("GET")
	api.HandleFunc("/mpans/{mpan}", mpans.GetSummary).Methods("GET")
	api.HandleFunc("/mpans/{mpan}/attribution", mpans.GetAttribution).Methods("GET")
	api.HandleFunc("/quotes", mpans.ListQuoteIDs).Methods("GET")

	// Companies
	api.HandleFunc("/companies", companies.FindCompany).Methods("GET")
	api.HandleFunc("/companies/{id}", companies.GetCompany).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "corona-analytics-api",
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
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
