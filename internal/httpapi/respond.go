package httpapi

import (
	"encoding/json"
	"net/http"

	"microblog/internal/apperr"
	"microblog/internal/logger"
)

// statusFor maps error codes onto wire status codes. Conflicts map to
// 400 rather than 409, matching how integrity violations have always
// been reported by this API.
func statusFor(code string) int {
	switch code {
	case apperr.ECONFLICT, apperr.EINVALID:
		return http.StatusBadRequest
	case apperr.ENOTFOUND:
		return http.StatusNotFound
	case apperr.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

// envelope is the uniform success payload: result true plus the named
// fields.
func envelope(fields map[string]any) map[string]any {
	out := map[string]any{"result": true}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(apperr.ErrorCode(err))
	msg := apperr.ErrorMessage(err)
	if s.cfg.Debug {
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondJSON(w, status, map[string]any{
		"result":        false,
		"error_message": msg,
	})
}
