package firebase

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tansive/firebase/internal/common/logtrace"
)

// Suffix is appended to every data path. It selects the JSON encoding of
// the REST API.
const Suffix = ".json"

// Doer is the transport a Request dispatches to. *http.Client satisfies it;
// it must be safe for concurrent use when a Request is shared.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Doer = &http.Client{}

// Verb is the kind of data operation.
type Verb int

const (
	VerbRead   Verb = iota // GET
	VerbWrite              // PUT, replaces the subtree
	VerbAppend             // POST, the server generates a child key
	VerbMerge              // PATCH, updates children and never deletes omitted ones
	VerbRemove             // DELETE
)

// Method returns the HTTP method of the verb.
func (v Verb) Method() string {
	switch v {
	case VerbWrite:
		return http.MethodPut
	case VerbAppend:
		return http.MethodPost
	case VerbMerge:
		return http.MethodPatch
	case VerbRemove:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// HasPayload reports whether requests of this verb carry a body.
func (v Verb) HasPayload() bool {
	return v == VerbWrite || v == VerbAppend || v == VerbMerge
}

func (v Verb) String() string {
	switch v {
	case VerbRead:
		return "read"
	case VerbWrite:
		return "write"
	case VerbAppend:
		return "append"
	case VerbMerge:
		return "merge"
	case VerbRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Operation describes one call before it is dispatched. Data is serialized
// only for write-class verbs and ignored otherwise.
type Operation struct {
	Verb  Verb
	Path  string
	Data  any
	Query Query
}

// Request turns operations into HTTP requests against a database base URL.
// It holds no mutable state; the Doer is the only shared resource.
type Request struct {
	baseURL *url.URL
	doer    Doer
}

// NewRequest returns a Request for baseURL, which must end with a slash.
func NewRequest(baseURL *url.URL, doer Doer) *Request {
	return &Request{
		baseURL: baseURL,
		doer:    doer,
	}
}

// BaseURL returns a copy of the base URL.
func (r *Request) BaseURL() *url.URL {
	u := *r.baseURL
	return &u
}

// Read fetches the data at path.
func (r *Request) Read(ctx context.Context, path string, query Query) (*Response, error) {
	return r.Do(ctx, Operation{Verb: VerbRead, Path: path, Query: query})
}

// Write replaces the data at path.
func (r *Request) Write(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return r.Do(ctx, Operation{Verb: VerbWrite, Path: path, Data: data, Query: query})
}

// Append adds data as a new child of path under a server generated key.
func (r *Request) Append(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return r.Do(ctx, Operation{Verb: VerbAppend, Path: path, Data: data, Query: query})
}

// Remove deletes the data at path.
func (r *Request) Remove(ctx context.Context, path string, query Query) (*Response, error) {
	return r.Do(ctx, Operation{Verb: VerbRemove, Path: path, Query: query})
}

// Merge writes the children in data at path and leaves the others alone.
func (r *Request) Merge(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return r.Do(ctx, Operation{Verb: VerbMerge, Path: path, Data: data, Query: query})
}

// Do dispatches op. Building errors are returned before any request is sent;
// transport errors are returned unchanged.
func (r *Request) Do(ctx context.Context, op Operation) (*Response, error) {
	p := strings.TrimLeft(op.Path, "/")
	if p == "" {
		return nil, ErrInvalidPath
	}

	var body []byte
	if op.Verb.HasPayload() {
		var err error
		body, err = json.Marshal(op.Data)
		if err != nil {
			return nil, ErrInvalidPayload.Err(err)
		}
	}

	u := r.BaseURL()
	u.Path = u.Path + p + Suffix
	u.RawPath = ""
	return r.send(ctx, op.Verb.Method(), u, body, op.Query)
}

// Fetch sends a bodiless request to an absolute URL. It is used for the
// endpoints that live outside the database, such as Simple Login.
func (r *Request) Fetch(ctx context.Context, method string, target *url.URL, query Query) (*Response, error) {
	u := *target
	return r.send(ctx, method, &u, nil, query)
}

func (r *Request) send(ctx context.Context, method string, u *url.URL, body []byte, query Query) (*Response, error) {
	values, err := query.Values()
	if err != nil {
		return nil, err
	}
	u.RawQuery = values.Encode()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, ErrInvalidPath.Err(err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestId := logtrace.NewRequestId()
	logger := log.Ctx(ctx).With().
		Str("request_id", requestId).
		Str("method", method).
		Str("host", u.Host).
		Str("path", u.Path).
		Logger()

	start := time.Now()
	resp, err := r.doer.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("request failed")
		return nil, err
	}
	res, err := readResponse(resp)
	if err != nil {
		logger.Debug().Err(err).Msg("unable to read response body")
		return nil, err
	}
	logger.Debug().
		Int("status", res.StatusCode).
		Str("duration", time.Since(start).String()).
		Msg("request completed")
	return res, nil
}
