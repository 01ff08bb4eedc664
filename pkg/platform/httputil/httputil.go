// Package httputil holds the JSON envelope helpers shared by HTTP handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "symposium/pkg/domain-errors"
)

// GenericErrorMessage is returned for every error that is not client-caused.
const GenericErrorMessage = "An error occurred. Please try again."

// maxBodyBytes caps request bodies decoded by DecodeJSON.
const maxBodyBytes = 64 << 10

// FieldErrors is implemented by errors that carry per-field messages.
type FieldErrors interface {
	error
	Fields() map[string]string
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status code and JSON envelope.
// Internal errors never leak their message to the client.
func WriteError(w http.ResponseWriter, err error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: fe.Error(), Fields: fe.Fields()})
		return
	}

	de, ok := dErrors.Is(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: GenericErrorMessage})
		return
	}

	status := dErrors.HTTPStatus(de.Code)
	if status >= http.StatusInternalServerError {
		WriteJSON(w, status, ErrorResponse{Error: GenericErrorMessage})
		return
	}
	WriteJSON(w, status, ErrorResponse{Error: de.Message})
}

// DecodeJSON decodes a bounded JSON body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid request body")
	}
	return nil
}
