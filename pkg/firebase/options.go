package firebase

import (
	"net/http"
	"time"
)

const (
	DefaultAuthURL  = "https://auth.firebase.com/v2/"
	DefaultAdminURL = "https://admin.firebase.com/account/login"
)

// ClientOption is a function type for configuring client behavior.
type ClientOption func(*clientConfig)

type clientConfig struct {
	auth     string
	doer     Doer
	timeout  time.Duration
	authURL  string
	adminURL string
}

// WithAuth sets the token sent as the auth query option on data requests.
func WithAuth(token string) ClientOption {
	return func(c *clientConfig) {
		c.auth = token
	}
}

// WithHTTPClient sets the transport. The default is an *http.Client, which
// follows redirects.
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *clientConfig) {
		c.doer = doer
	}
}

// WithTimeout sets the timeout of the default http client. It has no effect
// when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithAuthURL overrides the base URL of the Simple Login endpoints.
func WithAuthURL(authURL string) ClientOption {
	return func(c *clientConfig) {
		c.authURL = authURL
	}
}

// WithAdminURL overrides the admin login endpoint used by ListUsers.
func WithAdminURL(adminURL string) ClientOption {
	return func(c *clientConfig) {
		c.adminURL = adminURL
	}
}

func (c *clientConfig) httpClient() Doer {
	if c.doer != nil {
		return c.doer
	}
	return &http.Client{Timeout: c.timeout}
}
