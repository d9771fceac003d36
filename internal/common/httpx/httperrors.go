// Package httpx provides HTTP response helpers for servers that speak the
// Firebase REST dialect: JSON bodies and {"error": "..."} error documents.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/tansive/firebase/internal/common/apperrors"
)

// Error represents an HTTP error response with status code and description.
type Error struct {
	Description string `json:"error"`
	StatusCode  int    `json:"-"`
}

// Send writes the error response to the provided ResponseWriter.
// If the writer is nil, no action is taken.
func (e *Error) Send(w http.ResponseWriter) {
	if w == nil {
		return
	}
	rspJson, err := json.Marshal(e)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Unable to parse error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	w.Write(rspJson)
}

// Error returns the error description.
func (e *Error) Error() string {
	return e.Description
}

// SendError sends an application error as an HTTP error response.
// If the error is nil, no action is taken.
func SendError(w http.ResponseWriter, err apperrors.Error) {
	if err == nil {
		return
	}
	statusCode := err.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	httperror := &Error{
		StatusCode:  statusCode,
		Description: err.ErrorAll(),
	}
	httperror.Send(w)
}

// ErrPermissionDenied is what the database answers when the auth option is
// missing or wrong.
func ErrPermissionDenied() *Error {
	return &Error{
		Description: "Permission denied",
		StatusCode:  http.StatusUnauthorized,
	}
}

// ErrInvalidData returns an error when the request body is not valid JSON.
func ErrInvalidData() *Error {
	return &Error{
		Description: "Invalid data; couldn't parse JSON object, array, or value.",
		StatusCode:  http.StatusBadRequest,
	}
}

// ErrReqMethodNotSupported returns an error for unsupported HTTP methods.
func ErrReqMethodNotSupported() *Error {
	return &Error{
		Description: "request method not supported",
		StatusCode:  http.StatusMethodNotAllowed,
	}
}

// ErrNotFound returns an error for unknown endpoints.
func ErrNotFound() *Error {
	return &Error{
		Description: "not found",
		StatusCode:  http.StatusNotFound,
	}
}

// ErrApplicationError returns an error for application-level failures.
// If no message is provided, a default message is used.
func ErrApplicationError(err ...string) *Error {
	s := "unable to process request"
	if len(err) > 0 {
		s = err[0]
	}
	return &Error{
		Description: s,
		StatusCode:  http.StatusInternalServerError,
	}
}
