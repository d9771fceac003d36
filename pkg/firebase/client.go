// Package firebase is a client for the Firebase realtime database REST API.
// It reads, writes, merges and deletes JSON subtrees and exposes the Simple
// Login endpoints.
//
// Each operation sends exactly one request and returns a *Response whose body
// is parsed lazily:
//
//	client, err := firebase.NewClient("https://test.firebaseio.com", firebase.WithAuth(secret))
//	resp, err := client.Set(ctx, "users/info", map[string]any{"name": "Oscar"}, nil)
//	if !resp.Success() {
//		return resp.Err()
//	}
//	body, err := resp.Body()
//
// Clients are immutable and safe for concurrent use as long as the
// configured transport is.
package firebase

import (
	"context"
	"net/url"
	"strings"
)

// Client is a handle on one database.
type Client struct {
	request   *Request
	auth      string
	namespace string
	authURL   *url.URL
	adminURL  *url.URL
}

// NewClient creates a Client for baseURI, which must be an https URL such as
// https://test.firebaseio.com. Any other input fails with ErrInvalidBaseURI.
func NewClient(baseURI string, opts ...ClientOption) (*Client, error) {
	config := clientConfig{
		authURL:  DefaultAuthURL,
		adminURL: DefaultAdminURL,
	}
	for _, opt := range opts {
		opt(&config)
	}

	base, err := parseHTTPSURL(baseURI)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	base.RawQuery = ""
	base.Fragment = ""

	authURL, err := parseHTTPSURL(config.authURL)
	if err != nil {
		return nil, ErrInvalidConfig.MsgErr("auth url must be a valid https uri", err)
	}
	adminURL, err := parseHTTPSURL(config.adminURL)
	if err != nil {
		return nil, ErrInvalidConfig.MsgErr("admin url must be a valid https uri", err)
	}

	return &Client{
		request:   NewRequest(base, config.httpClient()),
		auth:      config.auth,
		namespace: namespaceOf(base),
		authURL:   authURL,
		adminURL:  adminURL,
	}, nil
}

func parseHTTPSURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrInvalidBaseURI
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, ErrInvalidBaseURI.Err(err)
	}
	if u.Scheme != "https" || u.Hostname() == "" || u.Opaque != "" {
		return nil, ErrInvalidBaseURI
	}
	return u, nil
}

// namespaceOf returns the first DNS label of the database host, "test" for
// test.firebaseio.com.
func namespaceOf(u *url.URL) string {
	label, _, _ := strings.Cut(u.Hostname(), ".")
	return label
}

// Auth returns the token sent with data requests.
func (c *Client) Auth() string {
	return c.auth
}

// WithAuth returns a copy of the client that sends token instead.
func (c *Client) WithAuth(token string) *Client {
	cp := *c
	cp.auth = token
	return &cp
}

// Request returns the request builder of the client.
func (c *Client) Request() *Request {
	return c.request
}

// Namespace returns the database name used by the Simple Login endpoints.
func (c *Client) Namespace() string {
	return c.namespace
}

// Set writes data at path and returns the written data.
func (c *Client) Set(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return c.request.Write(ctx, path, data, c.queryOptions(query))
}

// Get returns the data at path.
func (c *Client) Get(ctx context.Context, path string, query Query) (*Response, error) {
	return c.request.Read(ctx, path, c.queryOptions(query))
}

// Push writes data under a generated key and returns {"name": key}.
func (c *Client) Push(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return c.request.Append(ctx, path, data, c.queryOptions(query))
}

// Delete removes the data at path.
func (c *Client) Delete(ctx context.Context, path string, query Query) (*Response, error) {
	return c.request.Remove(ctx, path, c.queryOptions(query))
}

// Update writes the children in data at path without deleting omitted
// children, and returns the written data.
func (c *Client) Update(ctx context.Context, path string, data any, query Query) (*Response, error) {
	return c.request.Merge(ctx, path, data, c.queryOptions(query))
}

// queryOptions lays the caller's options over the auth token, so a caller
// supplied auth option wins.
func (c *Client) queryOptions(query Query) Query {
	if c.auth == "" {
		return query
	}
	return Query{AuthKey: c.auth}.Merge(query)
}
