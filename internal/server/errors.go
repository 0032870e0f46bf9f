package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/bubblechart/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		code, status, msg = errors.ErrCodeInternal, http.StatusGatewayTimeout, "request timed out"
	case stderrors.Is(err, context.Canceled):
		code, status, msg = errors.ErrCodeInternal, http.StatusServiceUnavailable, "request cancelled"
	case code == "":
		code, msg = errors.ErrCodeInternal, "internal error"
	}

	writeJSON(w, status, errorBody{Code: code, Message: msg, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
