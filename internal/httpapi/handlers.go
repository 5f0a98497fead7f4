package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const healthTimeout = 5 * time.Second

// Status answers GET /api/status with a plain OK.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Health reports liveness plus database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	body := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			h.respondJSON(w, r, http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "connected"
	}
	h.respondJSON(w, r, http.StatusOK, body)
}

// SiteMenu serves the nested menu of every group in a site.
func (h *Handler) SiteMenu(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "siteCode")
	resp, err := h.menu.SiteMenu(r.Context(), code)
	if err != nil {
		h.respondServiceError(w, r, "site-menu", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, resp)
}
