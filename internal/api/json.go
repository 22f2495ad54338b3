package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frame/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("json encode failed", "err", err)
	}
}

type errResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch code := errors.GetCode(err); {
	case stderrors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeInvalidFormat, code == errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error body. Internal errors are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
		writeJSON(w, status, errResponse{Error: "internal error", Code: errors.ErrCodeInternal})
		return
	}
	writeJSON(w, status, errResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}
