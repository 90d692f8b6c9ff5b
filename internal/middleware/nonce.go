package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/a-h/templ"
)

// NonceMiddleware gives each request a fresh script nonce. The layout's
// inline scripts and SecurityHeaders both read it back with templ.GetNonce.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := templ.WithNonce(r.Context(), randomToken(16, base64.StdEncoding))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// randomToken encodes n bytes from crypto/rand, which does not fail.
func randomToken(n int, enc *base64.Encoding) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return enc.EncodeToString(b)
}
