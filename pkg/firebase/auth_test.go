package firebase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/firebase/pkg/firebase"
	"github.com/tansive/firebase/pkg/firebase/firebasetest"
)

func TestCreateUser(t *testing.T) {
	client, srv := newTestClient(t, "")

	resp, err := client.CreateUser(context.Background(), "email@example.com", "pw")
	require.NoError(t, err)
	require.True(t, resp.Success())
	body, err := resp.Body()
	require.NoError(t, err)
	uid, ok := body.Get("uid").Text()
	assert.True(t, ok)
	assert.Equal(t, "simplelogin:1", uid)
	assert.True(t, srv.HasUser("email@example.com"))

	last, _ := srv.LastRequest()
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/v2/127/users", last.Path)
	assert.Equal(t, "POST", last.Query.Get("_method"))
	assert.Equal(t, "email@example.com", last.Query.Get("email"))
	assert.Equal(t, "pw", last.Query.Get("password"))

	resp, err = client.CreateUser(context.Background(), "email@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.EqualError(t, resp.Err(), "EMAIL_TAKEN")
}

func TestChangeEmail(t *testing.T) {
	client, srv := newTestClient(t, "")
	srv.AddUser("old@example.com", "pw")

	resp, err := client.ChangeEmail(context.Background(), "old@example.com", "new@example.com", "pw")
	require.NoError(t, err)
	require.True(t, resp.Success())
	assert.False(t, srv.HasUser("old@example.com"))
	assert.True(t, srv.HasUser("new@example.com"))

	last, _ := srv.LastRequest()
	assert.Equal(t, "/v2/127/users/old@example.com/email", last.Path)
	assert.Equal(t, "PUT", last.Query.Get("_method"))
	assert.Equal(t, "old@example.com", last.Query.Get("oldEmail"))
	assert.Equal(t, "new@example.com", last.Query.Get("newEmail"))
	assert.Equal(t, "new@example.com", last.Query.Get("email"))

	resp, err = client.ChangeEmail(context.Background(), "new@example.com", "other@example.com", "nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualError(t, resp.Err(), "INVALID_PASSWORD")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "")
	srv.AddUser("email@example.com", "old")

	resp, err := client.ChangePassword(ctx, "email@example.com", "old", "new")
	require.NoError(t, err)
	require.True(t, resp.Success())

	last, _ := srv.LastRequest()
	assert.Equal(t, "/v2/127/users/email@example.com/password", last.Path)
	assert.Equal(t, "PUT", last.Query.Get("_method"))
	assert.Equal(t, "old", last.Query.Get("oldPassword"))
	assert.Equal(t, "new", last.Query.Get("newPassword"))
	assert.Equal(t, "new", last.Query.Get("password"))

	resp, err = client.AuthWithPassword(ctx, "email@example.com", "new")
	require.NoError(t, err)
	assert.True(t, resp.Success())
}

func TestRemoveUser(t *testing.T) {
	client, srv := newTestClient(t, "")
	srv.AddUser("email@example.com", "pw")

	resp, err := client.RemoveUser(context.Background(), "email@example.com", "pw")
	require.NoError(t, err)
	require.True(t, resp.Success())
	assert.False(t, srv.HasUser("email@example.com"))

	last, _ := srv.LastRequest()
	assert.Equal(t, "/v2/127/users/email@example.com", last.Path)
	assert.Equal(t, "DELETE", last.Query.Get("_method"))

	resp, err = client.RemoveUser(context.Background(), "email@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.EqualError(t, resp.Err(), "INVALID_USER")
}

func TestEmailIsPathEscaped(t *testing.T) {
	client, srv := newTestClient(t, "")
	srv.AddUser("a/b@example.com", "pw")

	resp, err := client.RemoveUser(context.Background(), "a/b@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.False(t, srv.HasUser("a/b@example.com"))
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "", firebasetest.WithAdmin("admin@example.com", "adminpw"))
	srv.AddUser("one@example.com", "pw")
	srv.AddUser("two@example.com", "pw")
	srv.AddUser("three@example.com", "pw")

	resp, err := client.ListUsers(ctx, 2, 1, "admin@example.com", "adminpw")
	require.NoError(t, err)
	require.True(t, resp.Success())
	body, err := resp.Body()
	require.NoError(t, err)

	var list firebase.UserList
	require.NoError(t, body.Decode(&list))
	assert.Equal(t, []firebase.User{
		{UID: "simplelogin:2", Email: "two@example.com"},
		{UID: "simplelogin:3", Email: "three@example.com"},
	}, list.Users)
	assert.Equal(t, firebase.ListMetadata{Limit: 2, Offset: 1, Total: 3}, list.Metadata)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/account/login", reqs[0].Path)
	assert.Equal(t, "admin@example.com", reqs[0].Query.Get("email"))
	assert.Equal(t, "/v2/127/users", reqs[1].Path)
	assert.NotEmpty(t, reqs[1].Query.Get("token"))
	assert.Equal(t, "2", reqs[1].Query.Get("limit"))
	assert.Equal(t, "1", reqs[1].Query.Get("offset"))
	assert.False(t, reqs[1].Query.Has("_method"))
}

func TestListUsersBadAdminCredentials(t *testing.T) {
	client, srv := newTestClient(t, "", firebasetest.WithAdmin("admin@example.com", "adminpw"))

	resp, err := client.ListUsers(context.Background(), 10, 0, "admin@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.EqualError(t, resp.Err(), "INVALID_TOKEN")

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.False(t, reqs[1].Query.Has("token"))
}

func TestAuthWithPassword(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "secret")
	srv.AddUser("email@example.com", "pw")

	resp, err := client.AuthWithPassword(ctx, "email@example.com", "pw")
	require.NoError(t, err)
	require.True(t, resp.Success())
	body, err := resp.Body()
	require.NoError(t, err)

	var auth firebase.AuthData
	require.NoError(t, body.Decode(&auth))
	assert.Equal(t, "password", auth.Provider)
	assert.Equal(t, "simplelogin:1", auth.UID)
	assert.NotEmpty(t, auth.Token)
	require.NotNil(t, auth.Password)
	assert.Equal(t, "email@example.com", auth.Password.Email)
	assert.False(t, auth.Password.IsTemporaryPassword)

	last, _ := srv.LastRequest()
	assert.Equal(t, "/v2/127/auth/password", last.Path)
	assert.False(t, last.Query.Has("auth"), "simple login calls do not carry the data token")

	// the issued token opens the data endpoints
	resp, err = client.WithAuth(auth.Token).Get(ctx, "users", nil)
	require.NoError(t, err)
	assert.True(t, resp.Success())

	resp, err = client.AuthWithPassword(ctx, "email@example.com", "bad")
	require.NoError(t, err)
	assert.EqualError(t, resp.Err(), "INVALID_PASSWORD")
}

func TestAuthWithOAuth(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "")

	resp, err := client.AuthWithOAuth(ctx, "github", "req-1", "https://app.example.com/done")
	require.NoError(t, err)
	require.True(t, resp.Success())
	last, _ := srv.LastRequest()
	assert.Equal(t, "/v2/127/auth/github", last.Path)
	assert.Equal(t, "req-1", last.Query.Get("requestId"))
	assert.Equal(t, "https://app.example.com/done", last.Query.Get("redirectTo"))

	_, err = client.AuthWithOAuth(ctx, "twitter", "", "")
	require.NoError(t, err)
	last, _ = srv.LastRequest()
	assert.Empty(t, last.Query)
}

type countingDoer struct {
	calls int
}

func (d *countingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	return nil, http.ErrHandlerTimeout
}

func TestNotImplemented(t *testing.T) {
	ctx := context.Background()
	doer := &countingDoer{}
	client, err := firebase.NewClient("https://test.firebaseio.com", firebase.WithHTTPClient(doer))
	require.NoError(t, err)

	calls := map[string]func() (*firebase.Response, error){
		"reset password": func() (*firebase.Response, error) { return client.ResetPassword(ctx, "email@example.com") },
		"custom token":   func() (*firebase.Response, error) { return client.AuthWithCustomToken(ctx, "token") },
		"anonymous":      func() (*firebase.Response, error) { return client.AuthAnonymously(ctx) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			resp, err := call()
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, firebase.ErrNotImplemented)
			assert.ErrorIs(t, err, firebase.ErrFirebase)
		})
	}
	assert.Zero(t, doer.calls)
}

func TestSimpleLoginUsesNamespace(t *testing.T) {
	doer := &countingDoer{}
	client, err := firebase.NewClient("https://my-db.firebaseio.com", firebase.WithHTTPClient(doer))
	require.NoError(t, err)
	assert.Equal(t, "my-db", client.Namespace())

	_, err = client.CreateUser(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, http.ErrHandlerTimeout)
	assert.Equal(t, 1, doer.calls)
}
