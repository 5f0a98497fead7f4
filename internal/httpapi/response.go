package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/menu"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/alexanderramin/pages/internal/service"
	"go.uber.org/zap"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, errorBody{Error: message, RequestID: GetRequestID(r.Context())})
}

// respondServiceError maps a service or store error onto a status code.
// Internal failures are logged in full and reported without detail.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	fields := []zap.Field{
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
		h.respondError(w, r, status, "internal server error")
		return
	}
	h.logger.Debug("request rejected", fields...)
	h.respondError(w, r, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, menu.ErrSiteNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, service.ErrInvalidParent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
