package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/homerender/internal/ctxkeys"
)

// SecurityHeaders sets the CSP (with the per-request script nonce) and the
// usual hardening headers. Must run after NonceMiddleware and Config.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		imgSrc := []string{"'self'", "data:"}
		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.StorageDriver == "s3" {
			imgSrc = append(imgSrc, s3Origin(cfg.S3Endpoint, cfg.S3Bucket, cfg.S3Region))
		}

		scriptSrc := "'self'"
		if nonce := templ.GetNonce(r.Context()); nonce != "" {
			scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
		}

		csp := strings.Join([]string{
			"default-src 'self'",
			"script-src " + scriptSrc,
			"style-src 'self' 'unsafe-inline'",
			"img-src " + strings.Join(imgSrc, " "),
			"connect-src 'self'",
			"form-action 'self'",
			"frame-ancestors 'none'",
			"base-uri 'self'",
		}, "; ")

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func s3Origin(endpoint, bucket, region string) string {
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Scheme + "://" + u.Host
}
