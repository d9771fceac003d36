package httpx

import (
	"net/http"
)

// ResponseWriter records the status and body size of a response so that
// middleware can log them after the handler returns. Only the first
// WriteHeader call takes effect.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.status != 0 {
		return
	}
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Written reports whether the response has been started.
func (rw *ResponseWriter) Written() bool {
	return rw.status != 0
}

// Status is the status sent, or 200 if nothing was sent yet.
func (rw *ResponseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// Size is the number of body bytes written.
func (rw *ResponseWriter) Size() int {
	return rw.bytes
}
