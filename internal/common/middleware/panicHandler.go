package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/tansive/firebase/internal/common/httpx"
)

// PanicHandler turns a handler panic into a 500 with the database's error
// body. Panics after the response has started are only logged.
func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := httpx.NewResponseWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Ctx(r.Context()).Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			if !rw.Written() {
				httpx.ErrApplicationError("Internal server error").Send(rw)
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
