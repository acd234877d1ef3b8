package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/authdash/internal/version"
)

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"status":         "active",
		"app":            "authdash",
		"version":        version.Version,
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
	}, http.StatusOK)
}
