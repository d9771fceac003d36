package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tansive/firebase/internal/common/apperrors"
)

func TestSendJsonRsp(t *testing.T) {
	tests := []struct {
		name       string
		msg        any
		wantStatus int
		wantBody   string
	}{
		{name: "struct", msg: map[string]string{"name": "Oscar"}, wantStatus: http.StatusOK, wantBody: `{"name":"Oscar"}`},
		{name: "raw json", msg: json.RawMessage(`null`), wantStatus: http.StatusOK, wantBody: `null`},
		{name: "bytes", msg: []byte(`true`), wantStatus: http.StatusOK, wantBody: `true`},
		{name: "invalid bytes", msg: []byte(`{"oops"`), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SendJsonRsp(context.Background(), rec, http.StatusOK, tt.msg)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestErrorSend(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrPermissionDenied().Send(rec)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Permission denied"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	SendError(rec, apperrors.New("user exists").SetStatusCode(http.StatusConflict))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"user exists"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	SendError(rec, apperrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)
	assert.False(t, rw.Written())
	assert.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusNoContent)
	rw.WriteHeader(http.StatusTeapot)
	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusNoContent, rw.Status())
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rw.Size())

	rec = httptest.NewRecorder()
	rw = NewResponseWriter(rec)
	n, err := rw.Write([]byte("null"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	_, _ = rw.Write([]byte("\n"))
	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, rw.Size())
}
