package firebasetest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tansive/firebase/internal/common/apperrors"
	"github.com/tansive/firebase/internal/common/httpx"
)

type userRecord struct {
	uid          string
	email        string
	passwordHash []byte
}

// Simple Login answers with an error code string in the error document.
var (
	errSimpleLogin         = apperrors.New("simple login error")
	errInvalidEmail        = errSimpleLogin.New("INVALID_EMAIL").SetStatusCode(http.StatusBadRequest)
	errEmailTaken          = errSimpleLogin.New("EMAIL_TAKEN").SetStatusCode(http.StatusBadRequest)
	errInvalidUser         = errSimpleLogin.New("INVALID_USER").SetStatusCode(http.StatusNotFound)
	errInvalidPassword     = errSimpleLogin.New("INVALID_PASSWORD").SetStatusCode(http.StatusUnauthorized)
	errInvalidToken        = errSimpleLogin.New("INVALID_TOKEN").SetStatusCode(http.StatusUnauthorized)
	errInvalidCredentials  = errSimpleLogin.New("INVALID_CREDENTIALS").SetStatusCode(http.StatusUnauthorized)
	errTokenSigningFailure = errSimpleLogin.New("unable to sign token")
)

// AddUser registers a Simple Login user and returns its uid.
func (s *Server) AddUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password)
}

func (s *Server) addUserLocked(email, password string) string {
	s.nextUID++
	u := &userRecord{
		uid:          fmt.Sprintf("simplelogin:%d", s.nextUID),
		email:        email,
		passwordHash: hashPassword(password),
	}
	s.users[email] = u
	s.userOrder = append(s.userOrder, email)
	return u.uid
}

func (s *Server) removeUserLocked(email string) {
	delete(s.users, email)
	for i, e := range s.userOrder {
		if e == email {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			break
		}
	}
}

// HasUser reports whether a Simple Login user with that email exists.
func (s *Server) HasUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok
}

func emailParam(r *http.Request) string {
	email := chi.URLParam(r, "email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		return unescaped
	}
	return email
}

// checkUserLocked returns the user for email if password matches.
func (s *Server) checkUserLocked(email, password string) (*userRecord, apperrors.Error) {
	u, ok := s.users[email]
	if !ok {
		return nil, errInvalidUser
	}
	if !checkPassword(u.passwordHash, password) {
		return nil, errInvalidPassword
	}
	return u, nil
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("_method") == http.MethodPost {
		s.createUser(w, r)
		return
	}
	s.listUsers(w, r)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email, password := q.Get("email"), q.Get("password")
	if email == "" || password == "" {
		httpx.SendError(w, errInvalidEmail)
		return
	}
	s.mu.Lock()
	if _, exists := s.users[email]; exists {
		s.mu.Unlock()
		httpx.SendError(w, errEmailTaken)
		return
	}
	uid := s.addUserLocked(email, password)
	s.mu.Unlock()
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"uid": uid})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminToken == "" || q.Get("token") != s.adminToken {
		httpx.SendError(w, errInvalidToken)
		return
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users := []map[string]string{}
	for i, email := range s.userOrder {
		if i < offset {
			continue
		}
		if limit > 0 && len(users) >= limit {
			break
		}
		users = append(users, map[string]string{"uid": s.users[email].uid, "email": email})
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]any{
		"users": users,
		"_metadata": map[string]int{
			"limit":  limit,
			"offset": offset,
			"total":  len(s.userOrder),
		},
	})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("_method") != http.MethodDelete {
		httpx.ErrReqMethodNotSupported().Send(w)
		return
	}
	email := emailParam(r)
	s.mu.Lock()
	u, loginErr := s.checkUserLocked(email, q.Get("password"))
	if loginErr != nil {
		s.mu.Unlock()
		httpx.SendError(w, loginErr)
		return
	}
	s.removeUserLocked(email)
	s.mu.Unlock()
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"uid": u.uid})
}

func (s *Server) handleChangeEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("_method") != http.MethodPut {
		httpx.ErrReqMethodNotSupported().Send(w)
		return
	}
	oldEmail, newEmail := emailParam(r), q.Get("newEmail")
	s.mu.Lock()
	defer s.mu.Unlock()
	u, loginErr := s.checkUserLocked(oldEmail, q.Get("password"))
	if loginErr != nil {
		httpx.SendError(w, loginErr)
		return
	}
	if _, taken := s.users[newEmail]; taken || newEmail == "" {
		httpx.SendError(w, errEmailTaken)
		return
	}
	delete(s.users, oldEmail)
	u.email = newEmail
	s.users[newEmail] = u
	for i, e := range s.userOrder {
		if e == oldEmail {
			s.userOrder[i] = newEmail
		}
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"uid": u.uid})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("_method") != http.MethodPut {
		httpx.ErrReqMethodNotSupported().Send(w)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, loginErr := s.checkUserLocked(emailParam(r), q.Get("oldPassword"))
	if loginErr != nil {
		httpx.SendError(w, loginErr)
		return
	}
	u.passwordHash = hashPassword(q.Get("newPassword"))
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"uid": u.uid})
}

func (s *Server) handleAuthPassword(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, loginErr := s.checkUserLocked(q.Get("email"), q.Get("password"))
	if loginErr != nil {
		httpx.SendError(w, loginErr)
		return
	}
	token, err := s.IssueToken(u.uid, "password")
	if err != nil {
		httpx.SendError(w, errTokenSigningFailure.Err(err))
		return
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]any{
		"provider": "password",
		"uid":      u.uid,
		"token":    token,
		"password": map[string]any{
			"email":               u.email,
			"isTemporaryPassword": false,
		},
	})
}

func (s *Server) handleAuthOAuth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rsp := map[string]string{"provider": chi.URLParam(r, "provider")}
	if id := q.Get("requestId"); id != "" {
		rsp["requestId"] = id
	}
	if redirect := q.Get("redirectTo"); redirect != "" {
		rsp["redirectTo"] = redirect
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminEmail == "" || q.Get("email") != s.adminEmail || q.Get("password") != s.adminPassword {
		httpx.SendError(w, errInvalidCredentials)
		return
	}
	if s.adminToken == "" {
		s.adminToken = uuid.NewString()
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"adminToken": s.adminToken})
}
