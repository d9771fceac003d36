package firebase

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

type bodyState int

const (
	bodyUnparsed bodyState = iota
	bodyParsed
)

// Response wraps a server response. The body is parsed on the first call to
// Body and the outcome, value or error, is kept for the life of the Response.
type Response struct {
	StatusCode int
	Header     http.Header

	raw []byte

	mu    sync.Mutex
	state bodyState
	value Value
	err   error
}

// NewResponse builds a Response from its parts.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		StatusCode: statusCode,
		Header:     header,
		raw:        body,
	}
}

// readResponse drains and closes the transport response.
func readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return NewResponse(resp.StatusCode, resp.Header, body), nil
}

// Body returns the parsed body. An empty body yields a KindNoContent Value;
// a body that is not valid JSON yields an error matching ErrDecode.
func (r *Response) Body() (Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == bodyUnparsed {
		r.value, r.err = parseValue(r.raw)
		r.state = bodyParsed
	}
	return r.value, r.err
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// RawBody returns the body exactly as received.
func (r *Response) RawBody() []byte {
	return r.raw
}

// Err returns nil for a successful response and an *HTTPError otherwise. The
// message is the server's "error" field when present, else the raw body.
func (r *Response) Err() error {
	if r.Success() {
		return nil
	}
	msg := strings.TrimSpace(string(r.raw))
	var serverErr ServerError
	if err := json.Unmarshal(r.raw, &serverErr); err == nil && serverErr.Error != "" {
		msg = serverErr.Error
	}
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}
	return &HTTPError{
		StatusCode: r.StatusCode,
		Message:    msg,
	}
}
