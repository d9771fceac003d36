package firebasetest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tansive/firebase/internal/common/httpx"
	"github.com/tansive/firebase/internal/common/pushid"
)

const dataSuffix = ".json"

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, dataSuffix) {
		httpx.ErrNotFound().Send(w)
		return
	}
	if !s.authorized(r.URL.Query().Get("auth")) {
		httpx.ErrPermissionDenied().Send(w)
		return
	}
	segs := splitPath(strings.TrimSuffix(r.URL.Path, dataSuffix))
	silent := r.URL.Query().Get("print") == "silent"

	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		v := clone(getNode(s.root, segs))
		s.mu.Unlock()
		if r.URL.Query().Get("shallow") == "true" {
			v = shallow(v)
		}
		httpx.SendJsonRsp(r.Context(), w, http.StatusOK, v)

	case http.MethodPut:
		v, ok := readJSON(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		s.root = setNode(s.root, segs, v)
		s.mu.Unlock()
		s.reply(w, r, silent, v)

	case http.MethodPost:
		v, ok := readJSON(w, r)
		if !ok {
			return
		}
		name := pushid.New()
		s.mu.Lock()
		s.root = setNode(s.root, append(segs, name), v)
		s.mu.Unlock()
		s.reply(w, r, silent, map[string]string{"name": name})

	case http.MethodPatch:
		v, ok := readJSON(w, r)
		if !ok {
			return
		}
		children, isObject := v.(map[string]any)
		if !isObject {
			httpx.ErrInvalidData().Send(w)
			return
		}
		s.mu.Lock()
		for key, child := range children {
			s.root = setNode(s.root, append(append([]string{}, segs...), splitPath(key)...), child)
		}
		s.mu.Unlock()
		s.reply(w, r, silent, v)

	case http.MethodDelete:
		s.mu.Lock()
		s.root = setNode(s.root, segs, nil)
		s.mu.Unlock()
		s.reply(w, r, silent, nil)

	default:
		httpx.ErrReqMethodNotSupported().Send(w)
	}
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, silent bool, v any) {
	if silent {
		httpx.SendNoContent(w)
		return
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, v)
}

func (s *Server) authorized(auth string) bool {
	if s.secret == "" {
		return true
	}
	if auth == s.secret {
		return true
	}
	return s.verifyToken(auth)
}

func readJSON(w http.ResponseWriter, r *http.Request) (any, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.ErrInvalidData().Send(w)
		return nil, false
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		httpx.ErrInvalidData().Send(w)
		return nil, false
	}
	return v, true
}
