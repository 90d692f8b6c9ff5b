// Package session keeps per-visitor state in a signed cookie: the guest
// rendering ids, the "new" marker for the next gallery view, pending flash
// messages and the last home description.
//
// The cookie is a capability list, not an identity. Logged-in users are
// identified by the auth token only.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

const (
	// MaxGuestIDs bounds the guest capability list. The oldest ids fall
	// off first.
	MaxGuestIDs = 60
	// MaxNewIDs bounds the "new" marker; losing it only drops a highlight.
	MaxNewIDs = 10
	// MaxFlashes keeps the latest messages when nobody views a page.
	MaxFlashes = 5
	// MaxDescriptionRunes caps the remembered home description.
	MaxDescriptionRunes = 500

	// MaxCookieValue keeps name, value and separator under the 4096 bytes
	// browsers accept for a cookie. Larger Set-Cookie headers are dropped
	// silently, which would lose freshly created guest ids.
	MaxCookieValue = 4000
)

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Session is the decoded cookie. Mutations only reach the browser through
// Manager.Save.
type Session struct {
	GuestIDs    []string `json:"guest_ids,omitempty"`
	NewIDs      []string `json:"new_ids,omitempty"`
	Flashes     []Flash  `json:"flashes,omitempty"`
	Description string   `json:"description,omitempty"`

	dirty bool
}

// claims is the signed form of a Session. Keys are short and uuids are
// packed to 22 characters to leave room under MaxCookieValue.
type claims struct {
	GuestIDs    idList  `json:"g,omitempty"`
	NewIDs      idList  `json:"n,omitempty"`
	Flashes     []Flash `json:"f,omitempty"`
	Description string  `json:"d,omitempty"`
	jwt.RegisteredClaims
}

// idList encodes canonical uuids as raw url-safe base64 of their 16 bytes.
// Anything else is kept verbatim behind a "=" prefix, which base64url never
// produces.
type idList []string

func (l idList) MarshalJSON() ([]byte, error) {
	out := make([]string, len(l))
	for i, id := range l {
		u, err := uuid.Parse(id)
		if err == nil && u.String() == id {
			out[i] = base64.RawURLEncoding.EncodeToString(u[:])
		} else {
			out[i] = "=" + id
		}
	}
	return json.Marshal(out)
}

func (l *idList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make(idList, len(raw))
	for i, v := range raw {
		if rest, ok := strings.CutPrefix(v, "="); ok {
			ids[i] = rest
			continue
		}
		b, err := base64.RawURLEncoding.DecodeString(v)
		if err != nil {
			return fmt.Errorf("bad session id %q: %w", v, err)
		}
		u, err := uuid.FromBytes(b)
		if err != nil {
			return fmt.Errorf("bad session id %q: %w", v, err)
		}
		ids[i] = u.String()
	}
	*l = ids
	return nil
}

// AddGuestIDs records renderings created by an anonymous visitor. It
// returns how many of the oldest ids fell off the list; the visitor can no
// longer reach those renderings.
func (s *Session) AddGuestIDs(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	s.GuestIDs = append(s.GuestIDs, ids...)
	s.dirty = true

	over := len(s.GuestIDs) - MaxGuestIDs
	if over <= 0 {
		return 0
	}
	slog.Warn("guest rendering list full, dropping oldest", "dropped", over)
	s.GuestIDs = slices.Clone(s.GuestIDs[over:])
	return over
}

// HasGuestID reports whether id was created in this session.
func (s *Session) HasGuestID(id string) bool {
	return slices.Contains(s.GuestIDs, id)
}

// MarkNew flags ids for the "new" section of the next gallery view.
func (s *Session) MarkNew(ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.NewIDs = keepLast(append(s.NewIDs, ids...), MaxNewIDs)
	s.dirty = true
}

// TakeNew returns the marked ids and clears the marker.
func (s *Session) TakeNew() []string {
	ids := s.NewIDs
	if len(ids) > 0 {
		s.NewIDs = nil
		s.dirty = true
	}
	return ids
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = keepLast(append(s.Flashes, Flash{Category: category, Message: message}), MaxFlashes)
	s.dirty = true
}

func keepLast[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return slices.Clone(items[len(items)-n:])
}

// TakeFlashes returns pending messages and clears them.
func (s *Session) TakeFlashes() []Flash {
	flashes := s.Flashes
	if len(flashes) > 0 {
		s.Flashes = nil
		s.dirty = true
	}
	return flashes
}

// SetDescription remembers the home description, cut to
// MaxDescriptionRunes.
func (s *Session) SetDescription(description string) {
	if utf8.RuneCountInString(description) > MaxDescriptionRunes {
		description = string([]rune(description)[:MaxDescriptionRunes])
	}
	if s.Description == description {
		return
	}
	s.Description = description
	s.dirty = true
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Manager signs and verifies the session cookie.
type Manager struct {
	secret []byte
	expiry time.Duration
	secure bool
}

func NewManager(secret string, expiry time.Duration, secure bool) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		secure: secure,
	}
}

// Load decodes the request's session. A missing, expired or tampered
// cookie yields an empty session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	s, err := m.Decode(cookie.Value)
	if err != nil {
		slog.Debug("discarding invalid session cookie", "error", err)
		return &Session{dirty: true}
	}
	return s
}

// Decode verifies a signed session value.
func (m *Manager) Decode(value string) (*Session, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(value, c, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	return &Session{
		GuestIDs:    c.GuestIDs,
		NewIDs:      c.NewIDs,
		Flashes:     c.Flashes,
		Description: c.Description,
	}, nil
}

// Encode signs the session. When the value would exceed MaxCookieValue it
// sheds state in order of least harm: the description, then old flashes,
// then the "new" marker, and the oldest guest ids only as a last resort.
func (m *Manager) Encode(s *Session) (string, error) {
	now := time.Now()
	c := claims{
		GuestIDs:    s.GuestIDs,
		NewIDs:      s.NewIDs,
		Flashes:     s.Flashes,
		Description: s.Description,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	for {
		value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
		if err != nil || len(value) <= MaxCookieValue {
			return value, err
		}

		switch {
		case c.Description != "":
			c.Description = ""
		case len(c.Flashes) > 0:
			c.Flashes = c.Flashes[1:]
		case len(c.NewIDs) > 0:
			c.NewIDs = c.NewIDs[1:]
		case len(c.GuestIDs) > 0:
			slog.Warn("session cookie over budget, dropping oldest guest id", "size", len(value))
			c.GuestIDs = c.GuestIDs[1:]
		default:
			return "", fmt.Errorf("empty session encodes to %d bytes", len(value))
		}
	}
}

// Save writes the cookie when the session changed. It must run before the
// response header is written.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if !s.dirty {
		return nil
	}

	value, err := m.Encode(s)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Expires:  time.Now().Add(m.expiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.dirty = false
	return nil
}
