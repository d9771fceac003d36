package firebase

import (
	"context"
	"net/http"
	"net/url"
)

// Simple Login endpoints. They are reached with GET requests; the intended
// method travels in the _method query option.

const methodOverrideKey = "_method"

// CreateUser creates a Simple Login user and returns {"uid": ...}.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*Response, error) {
	return c.simpleLogin(ctx, Query{
		"email":           email,
		"password":        password,
		methodOverrideKey: http.MethodPost,
	}, "users")
}

// ChangeEmail moves a Simple Login user to a new email address.
func (c *Client) ChangeEmail(ctx context.Context, oldEmail, newEmail, password string) (*Response, error) {
	return c.simpleLogin(ctx, Query{
		"oldEmail":        oldEmail,
		"newEmail":        newEmail,
		"password":        password,
		"email":           newEmail,
		methodOverrideKey: http.MethodPut,
	}, "users", oldEmail, "email")
}

// ChangePassword replaces the password of a Simple Login user.
func (c *Client) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (*Response, error) {
	return c.simpleLogin(ctx, Query{
		"email":           email,
		"oldPassword":     oldPassword,
		"newPassword":     newPassword,
		"password":        newPassword,
		methodOverrideKey: http.MethodPut,
	}, "users", email, "password")
}

// ResetPassword is not supported by this client.
func (c *Client) ResetPassword(ctx context.Context, email string) (*Response, error) {
	return nil, ErrNotImplemented.New("password reset is not implemented")
}

// RemoveUser deletes a Simple Login user and returns {"uid": ...}.
func (c *Client) RemoveUser(ctx context.Context, email, password string) (*Response, error) {
	return c.simpleLogin(ctx, Query{
		"email":           email,
		"password":        password,
		methodOverrideKey: http.MethodDelete,
	}, "users", email)
}

// ListUsers returns a page of Simple Login users with a _metadata member.
// The admin credentials are exchanged for an admin token first; if that
// login fails the listing is attempted without a token and the server's
// answer is returned as is.
func (c *Client) ListUsers(ctx context.Context, limit, offset int, adminEmail, adminPassword string) (*Response, error) {
	tokenResp, err := c.request.Fetch(ctx, http.MethodGet, c.adminURL, Query{
		"email":    adminEmail,
		"password": adminPassword,
	})
	if err != nil {
		return nil, err
	}

	query := Query{
		"limit":  limit,
		"offset": offset,
	}
	if tokenResp.Success() {
		body, err := tokenResp.Body()
		if err != nil {
			return nil, err
		}
		if token, ok := body.Get("adminToken").Text(); ok {
			query["token"] = token
		}
	}
	return c.simpleLogin(ctx, query, "users")
}

// AuthWithPassword logs a Simple Login user in and returns the auth data,
// including the token.
func (c *Client) AuthWithPassword(ctx context.Context, email, password string) (*Response, error) {
	return c.simpleLogin(ctx, Query{
		"email":    email,
		"password": password,
	}, "auth", "password")
}

// AuthWithOAuth starts an OAuth login with provider (facebook, twitter,
// github, google). Empty requestID and redirect are omitted.
func (c *Client) AuthWithOAuth(ctx context.Context, provider, requestID, redirect string) (*Response, error) {
	query := Query{}
	if requestID != "" {
		query["requestId"] = requestID
	}
	if redirect != "" {
		query["redirectTo"] = redirect
	}
	return c.simpleLogin(ctx, query, "auth", provider)
}

// AuthWithCustomToken is not supported by this client.
func (c *Client) AuthWithCustomToken(ctx context.Context, token string) (*Response, error) {
	return nil, ErrNotImplemented.New("custom token authentication is not implemented")
}

// AuthAnonymously is not supported by this client.
func (c *Client) AuthAnonymously(ctx context.Context) (*Response, error) {
	return nil, ErrNotImplemented.New("anonymous authentication is not implemented")
}

func (c *Client) simpleLogin(ctx context.Context, query Query, segments ...string) (*Response, error) {
	return c.request.Fetch(ctx, http.MethodGet, c.simpleLoginURL(segments...), query)
}

func (c *Client) simpleLoginURL(segments ...string) *url.URL {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, url.PathEscape(c.namespace))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.authURL.JoinPath(escaped...)
}

// UserList is the document returned by ListUsers.
type UserList struct {
	Users    []User       `json:"users"`
	Metadata ListMetadata `json:"_metadata"`
}

type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type ListMetadata struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// AuthData is the document returned by AuthWithPassword.
type AuthData struct {
	Provider string            `json:"provider"`
	UID      string            `json:"uid"`
	Token    string            `json:"token"`
	Password *PasswordAuthData `json:"password,omitempty"`
}

type PasswordAuthData struct {
	Email               string `json:"email"`
	IsTemporaryPassword bool   `json:"isTemporaryPassword"`
}
