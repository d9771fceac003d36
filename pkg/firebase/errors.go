package firebase

import (
	"github.com/tansive/firebase/internal/common/apperrors"
)

var (
	// ErrFirebase is the root of every error produced by this package.
	ErrFirebase = apperrors.New("firebase error").SetExpandError(true)

	// ErrInvalidConfig is returned at construction time. No request is sent.
	ErrInvalidConfig  = ErrFirebase.New("invalid configuration")
	ErrInvalidBaseURI = ErrInvalidConfig.New("base uri must be a valid https uri")

	// Request building errors. No request is sent.
	ErrInvalidPath    = ErrFirebase.New("path must be a non-empty string")
	ErrInvalidPayload = ErrFirebase.New("payload is not json serializable")
	ErrInvalidQuery   = ErrFirebase.New("unsupported query option")

	// ErrDecode is returned by Response.Body when the body is not valid json.
	ErrDecode = ErrFirebase.New("unable to decode response body")

	ErrNotImplemented = ErrFirebase.New("not implemented")
)

// ServerError is the error document returned by the database and the
// Simple Login endpoints.
type ServerError struct {
	Error string `json:"error"`
}

// HTTPError represents an error response from the server with HTTP status code and message.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // Error message or response body
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Message
}
