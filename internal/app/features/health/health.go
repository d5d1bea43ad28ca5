// internal/app/features/health/health.go
package health

import (
	"net/http"
	"time"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/app/system/jsonutil"
	"github.com/dalemusser/stratahr/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version is reported by the health check.
const Version = "1.0.0"

// Handler provides health check endpoints.
type Handler struct {
	directory userstore.Directory // nil when not configured
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a new health check Handler.
func NewHandler(directory userstore.Directory, logger *zap.Logger) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
}

// Response represents the health check response.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Version   string `json:"version"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (status report), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonutil.MethodNotAllowed(w)
	})
	return r
}

// MountRootEndpoints adds /readyz and /livez endpoints directly on the root router.
// This is the standard convention for Kubernetes probes:
//   - /readyz - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check reports that the API process is up. It does not consult the
// directory; use Ready for that.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Response{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Message:   "HR API is running",
		Version:   Version,
	})
}

// Ready checks if the user directory is configured and reachable.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":    "not ready",
			"directory": "not configured",
		})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Probe(), h.logger, "directory readiness ping")
	defer cancel()

	if err := h.directory.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":    "not ready",
			"directory": "unavailable",
		})
		return
	}

	jsonutil.OK(w, map[string]string{"status": "ready", "directory": "ok"})
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}
