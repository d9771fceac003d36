// Package firebasetest provides an in-process HTTPS double of the Firebase
// REST API for tests. It keeps the database in memory, implements the Simple
// Login endpoints and records every request it receives.
//
//	srv := firebasetest.NewServer(firebasetest.WithSecret("secret"))
//	defer srv.Close()
//	client, err := firebase.NewClient(srv.URL(), srv.ClientOptions()...)
package firebasetest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tansive/firebase/internal/common/middleware"
	"github.com/tansive/firebase/pkg/firebase"
)

// RecordedRequest is a request as received by the server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Option configures a Server.
type Option func(*Server)

// WithSecret makes the data endpoints require auth=secret, or a token signed
// with the secret such as the ones the password login endpoint issues.
func WithSecret(secret string) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithAdmin sets the credentials accepted by the admin login endpoint.
func WithAdmin(email, password string) Option {
	return func(s *Server) {
		s.adminEmail = email
		s.adminPassword = password
	}
}

// Server is the test double. All methods are safe for concurrent use.
type Server struct {
	srv    *httptest.Server
	router *chi.Mux

	mu       sync.Mutex
	root     any
	requests []RecordedRequest

	secret        string
	fallbackKey   []byte
	users         map[string]*userRecord
	userOrder     []string
	nextUID       int
	adminEmail    string
	adminPassword string
	adminToken    string
}

// NewServer starts a TLS server. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{
		fallbackKey: []byte(uuid.NewString()),
		users:       make(map[string]*userRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = chi.NewRouter()
	s.mountHandlers()
	s.srv = httptest.NewTLSServer(s.router)
	return s
}

func (s *Server) mountHandlers() {
	s.router.Use(middleware.RequestLogger)
	s.router.Use(middleware.PanicHandler)
	s.router.Use(s.recordRequest)

	s.router.Get("/account/login", s.handleAdminLogin)
	s.router.Route("/v2/{namespace}", func(r chi.Router) {
		r.Get("/users", s.handleUsers)
		r.Get("/users/{email}", s.handleUser)
		r.Get("/users/{email}/email", s.handleChangeEmail)
		r.Get("/users/{email}/password", s.handleChangePassword)
		r.Get("/auth/password", s.handleAuthPassword)
		r.Get("/auth/{provider}", s.handleAuthOAuth)
	})
	s.router.HandleFunc("/*", s.handleData)
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// URL is the database base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// AuthURL is the Simple Login base URL.
func (s *Server) AuthURL() string {
	return s.srv.URL + "/v2/"
}

// AdminURL is the admin login endpoint.
func (s *Server) AdminURL() string {
	return s.srv.URL + "/account/login"
}

// Client returns an http client that trusts the server certificate.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// ClientOptions points a firebase.Client at this server.
func (s *Server) ClientOptions() []firebase.ClientOption {
	return []firebase.ClientOption{
		firebase.WithHTTPClient(s.Client()),
		firebase.WithAuthURL(s.AuthURL()),
		firebase.WithAdminURL(s.AdminURL()),
	}
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, or false if there is none.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}
