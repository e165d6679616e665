package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vigia/internal/platform/metrics"
	"vigia/internal/platform/middleware"
)

// ModuleHandler is implemented by every module's HTTP handler.
type ModuleHandler interface {
	Register(r chi.Router)
}

// NewRouter assembles the API. Module handlers mount under /api/v1; health
// and metrics sit outside the versioned prefix.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, handlers ...ModuleHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(m))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		for _, h := range handlers {
			h.Register(api)
		}
	})
	return r
}
