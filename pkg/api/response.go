package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

// classify maps an error to an HTTP status and error code.
func classify(err error) (int, errors.Code) {
	switch code := errors.GetCode(err); {
	case errors.IsValidation(err):
		return http.StatusBadRequest, code
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound, code
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented, code
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errors.ErrCodeInternal
	}
	return http.StatusInternalServerError, errors.ErrCodeInternal
}
