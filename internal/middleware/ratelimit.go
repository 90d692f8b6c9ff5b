package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/templui/homerender/internal/ctxkeys"
)

// RateLimiter keeps a sliding window of request times per client key.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
	go rl.sweepLoop()
	return rl
}

// Allow records a request for key and reports whether it fits the window.
// When it does not, the second result is how long until the oldest request
// in the window expires.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := rl.recent(key, now)

	if len(recent) >= rl.limit {
		rl.requests[key] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}

	rl.requests[key] = append(recent, now)
	return true, 0
}

// recent drops the times of key that fell out of the window. Times are
// appended in order, so the kept ones are a suffix.
func (rl *RateLimiter) recent(key string, now time.Time) []time.Time {
	times := rl.requests[key]
	cutoff := now.Add(-rl.window)
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.sweep()
	}
}

// sweep forgets clients with nothing left in the window.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key := range rl.requests {
		if len(rl.recent(key, now)) == 0 {
			delete(rl.requests, key)
		}
	}
}

// RateLimit allows limit requests per window per client. Signed-in users are
// counted by account so that a shared office IP does not exhaust them all;
// everyone else by IP.
func RateLimit(name string, limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			ok, retry := limiter.Allow(key)
			if !ok {
				slog.Warn("rate limit exceeded", "limiter", name, "client", key, "path", r.URL.Path)
				tooManyRequests(w, r, retry)
				return
			}

			next(w, r)
		}
	}
}

// RateLimitAuth limits login and registration attempts: 5 per 15 minutes.
func RateLimitAuth() func(http.HandlerFunc) http.HandlerFunc {
	return RateLimit("auth", 5, 15*time.Minute)
}

// RateLimitGeneration limits calls to the paid image model: 30 per hour.
func RateLimitGeneration() func(http.HandlerFunc) http.HandlerFunc {
	return RateLimit("generation", 30, time.Hour)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, retry time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
	refuse(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// refuse answers in the shape the caller reads: JSON for fetch, text otherwise.
func refuse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !wantsJSON(r) {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// wantsJSON is true for the gallery's fetch calls, which read the error
// field of a JSON body.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func clientKey(r *http.Request) string {
	if user := ctxkeys.User(r.Context()); user != nil {
		return "user:" + user.ID
	}
	return "ip:" + getClientIP(r)
}

// getClientIP prefers the proxy headers over the socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
