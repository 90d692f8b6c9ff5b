package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
)

// AuthMiddleware puts the user behind a valid auth cookie into the context.
// A stale or forged cookie is cleared and the request continues as a guest.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.AuthCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.FromToken(cookie.Value)
			if err != nil {
				slog.Debug("dropping auth cookie", "error", err)
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they were headed.
func RequireAuth(sessions *session.Manager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if ctxkeys.User(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess := ctxkeys.Session(r.Context())
			sess.AddFlash(session.FlashWarning, "Please log in to view that page.")
			if err := sessions.Save(w, sess); err != nil {
				slog.Error("failed to save session", "error", err, "path", r.URL.Path)
			}

			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
		}
	}
}

// RequireGuest keeps logged-in users away from the login and register pages
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			http.Redirect(w, r, "/gallery", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
