package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/homerender/internal/ctxkeys"
)

// statusRecorder remembers the status and body size a handler produced.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
		sr.ResponseWriter.WriteHeader(code)
	}
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Rendered images and the stylesheet would drown out the page requests.
var quietPrefixes = []string{"/static/", "/favicon.ico"}

// RequestLogging logs one line per request. It runs before AuthMiddleware,
// so the user id arrives through a RequestUser holder.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range quietPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w}
		who := &ctxkeys.RequestUser{}

		next.ServeHTTP(sr, r.WithContext(ctxkeys.WithRequestUser(r.Context(), who)))

		if sr.status == 0 {
			sr.status = http.StatusOK
		}
		level := slog.LevelInfo
		if sr.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"bytes", sr.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", getClientIP(r),
		}
		if who.ID != "" {
			attrs = append(attrs, "user_id", who.ID)
		}
		slog.Log(r.Context(), level, "http request", attrs...)
	})
}
