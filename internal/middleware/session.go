package middleware

import (
	"net/http"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/session"
)

// Session decodes the visitor session cookie into the context. Handlers
// that change it call Manager.Save before writing the response.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithSession(r.Context(), sessions.Load(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
