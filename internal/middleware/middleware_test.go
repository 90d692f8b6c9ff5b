package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/session"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := &RateLimiter{requests: map[string][]time.Time{}, limit: 2, window: time.Minute, now: func() time.Time { return clock }}

	ok, _ := rl.Allow("ip:1.2.3.4")
	assert.True(t, ok)
	clock = clock.Add(20 * time.Second)
	ok, _ = rl.Allow("ip:1.2.3.4")
	assert.True(t, ok)

	ok, retry := rl.Allow("ip:1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	ok, _ = rl.Allow("ip:5.6.7.8")
	assert.True(t, ok)

	clock = clock.Add(41 * time.Second)
	ok, _ = rl.Allow("ip:1.2.3.4")
	assert.True(t, ok, "oldest request left the window")

	clock = clock.Add(2 * time.Minute)
	rl.sweep()
	assert.Empty(t, rl.requests)
}

func TestRateLimitRespondsJSONToFetch(t *testing.T) {
	h := RateLimit("test", 1, time.Minute)(okHandler)

	call := func(accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate_room", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("application/json").Code)

	rec := call("application/json")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = call("text/html")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"error"`)
}

func TestRateLimitKeysSignedInUsers(t *testing.T) {
	h := RateLimit("test", 1, time.Minute)(okHandler)

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		if userID != "" {
			req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: userID}))
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("ana"))
	assert.Equal(t, http.StatusOK, call("bo"), "same IP, different account")
	assert.Equal(t, http.StatusOK, call(""))
	assert.Equal(t, http.StatusTooManyRequests, call("ana"))
	assert.Equal(t, http.StatusTooManyRequests, call(""))
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getClientIP(r))

	r.RemoteAddr = "[2001:db8::1]:5555"
	assert.Equal(t, "2001:db8::1", getClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(r))
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(okHandler))

	get := httptest.NewRecorder()
	h.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, get.Code)
	cookies := get.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value

	post := func(submitted string) int {
		form := url.Values{"csrf_token": {submitted}}
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post(token))
	assert.Equal(t, http.StatusForbidden, post("forged"))
	assert.Equal(t, http.StatusForbidden, post(""))

	req := httptest.NewRequest(http.MethodPost, "/bulk_action", nil)
	req.Header.Set(csrfHeader, token)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeadersCarryNonce(t *testing.T) {
	h := Chain(http.HandlerFunc(okHandler),
		Config(&config.Config{StorageDriver: "s3", S3Endpoint: "https://minio.local:9000/", S3Bucket: "renders"}),
		NonceMiddleware,
		SecurityHeaders,
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Contains(t, csp, "img-src 'self' data: https://minio.local:9000")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRequireAuthRedirectsWithNext(t *testing.T) {
	sessions := session.NewManager("secret", time.Hour, false)
	h := Chain(http.HandlerFunc(RequireAuth(sessions)(okHandler)), Session(sessions))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slideshow", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fslideshow", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	flashes := sessions.Load(req).TakeFlashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, session.FlashWarning, flashes[0].Category)
}

func TestSessionMiddlewareLoadsCookie(t *testing.T) {
	sessions := session.NewManager("secret", time.Hour, false)
	value, err := sessions.Encode(&session.Session{GuestIDs: []string{"g1"}})
	require.NoError(t, err)

	var got []string
	h := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Session(r.Context()).GuestIDs
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"g1"}, got)
}

func TestMaxBodySize(t *testing.T) {
	var parseErr error
	h := MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parseErr = r.ParseForm()
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("description=a-very-long-body"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Error(t, parseErr)
}

func TestRequestLoggingRecordsUser(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(ctxkeys.WithUser(r.Context(), &model.User{ID: "u-1"}))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gallery", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/gallery", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, 5, line["bytes"])
	assert.Equal(t, "u-1", line["user_id"])

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/renderings/x.png", nil))
	assert.Empty(t, buf.String())
}
