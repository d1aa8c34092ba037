// Package web holds the JSON plumbing shared by the HTTP handlers.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kbo-registry/kbo-crud/errs"
	"github.com/kbo-registry/kbo-crud/validation"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// MessageResponse confirms an operation that has no resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; a failed encode can only mean the client went away.
	_ = json.NewEncoder(w).Encode(body)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteError maps err to a status and a client-safe body. Unclassified
// errors are logged and reported as a 500 without details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *validation.RequestError
	if errors.As(err, &reqErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: reqErr.Message, Fields: reqErr.Fields})
		return
	}

	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteJSON(w, status, ErrorResponse{Error: "internal server error"})
		return
	}
	WriteJSON(w, status, ErrorResponse{Error: err.Error()})
}
