package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/templui/homerender/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfCookieAge  = 7 * 24 * 60 * 60
)

// CSRFProtection is a double-submit cookie check. The home and auth forms
// post the token as a field; the gallery's fetch calls send the header,
// which is checked first so a multipart plan upload is not parsed here
// unless it has to be.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookie(w, r)
		r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		submitted := r.Header.Get(csrfHeader)
		if submitted == "" {
			submitted = r.PostFormValue(csrfFormField)
		}

		if !sameToken(token, submitted) {
			slog.Warn("csrf check failed", "method", r.Method, "path", r.URL.Path, "ip", getClientIP(r))
			refuse(w, r, http.StatusForbidden, "Your form expired. Reload the page and try again.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// csrfCookie returns the visitor's token, issuing one when the cookie is
// missing or malformed.
func csrfCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(csrfCookieName); err == nil && len(c.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenBytes) {
		return c.Value
	}

	token := randomToken(csrfTokenBytes, base64.RawURLEncoding)
	cfg := ctxkeys.Config(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   csrfCookieAge,
	})
	return token
}

func sameToken(expected, actual string) bool {
	return expected != "" && actual != "" &&
		subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
