package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/soulful-academy/chakra-report/internal/logging"
	"github.com/soulful-academy/chakra-report/internal/reports"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

// Deps holds shared dependencies injected into HTTP handlers.
type Deps struct {
	Service        *reports.Service
	DefaultVariant reporting.Variant
	Version        string
	RenderLimit    int // renders per minute per client IP; 0 uses the default

	// TrustForwardedFor keys the render limit on X-Forwarded-For.
	TrustForwardedFor bool
}

// RegisterRoutes wires all HTTP handlers onto the given ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps *Deps) {
	limiter := NewRateLimiter(deps.RenderLimit, time.Minute)
	limiter.TrustForwardedFor = deps.TrustForwardedFor

	mux.HandleFunc("/healthz", HandleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/api/reports", limiter.Middleware(HandleCreateReport(deps.Service, deps.DefaultVariant)))
	mux.Handle("/api/reports/email", limiter.Middleware(HandleEmailReport(deps.Service, deps.DefaultVariant)))

	mux.HandleFunc("/api/content", HandleContent)
	mux.HandleFunc("/api/content/status-change", HandleStatusChange)
	mux.HandleFunc("/api/options", HandleOptions)
	mux.HandleFunc("/api/version", HandleVersion(deps.Version))
}

// RequestIDMiddleware tags each request with an ID (honouring X-Request-ID)
// and a request-scoped logger derived from logger.
func RequestIDMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := logging.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		ctx = logging.WithLogger(ctx, logger)
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		reqLogger := logging.FromContext(ctx)
		reqLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}
