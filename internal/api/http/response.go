package http

import (
	"encoding/json"
	"net/http"

	"agrorent-backend/internal/logger"
	apperrors "agrorent-backend/pkg/errors"
)

// Response is the envelope every endpoint replies with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// StatusCode maps an application error type to an HTTP status.
func StatusCode(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusForbidden
	case apperrors.ErrorTypeInvalidState, apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(apperrors.TypeOf(err))
	if code == http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "status", code, "error", err)
	}
	writeJSON(w, code, Response{Success: false, Message: apperrors.MessageOf(err)})
}
