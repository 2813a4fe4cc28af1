package api

import (
	"encoding/json"
	"net/http"

	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/logger"
)

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteError maps err onto the error taxonomy and serializes the
// structured body. Handlers and middleware share this single writer so
// failure bodies are identical regardless of which layer rejected the
// request. Anything that is not a taxonomy error is reported as
// internal without leaking its cause.
func WriteError(w http.ResponseWriter, err error) {
	kind := internal_errors.KindOf(err)

	detail := ErrorDetail{
		Type:        kind.Type(),
		Description: kind.Description(),
	}
	if e, ok := err.(*internal_errors.Error); ok {
		detail.Detail = e.Message
		if e.Detail != "" {
			if detail.Detail != "" {
				detail.Detail += ": " + e.Detail
			} else {
				detail.Detail = e.Detail
			}
		}
	} else {
		logger.Log.Error("unexpected error reached response writer", "error", err)
	}

	WriteJSON(w, kind.StatusCode(), ErrorResponse{Detail: detail})
}
