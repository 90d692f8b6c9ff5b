package ctxkeys

import (
	"context"

	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/session"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey      contextKey = "user"
	SessionKey   contextKey = "session"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
	RequestKey   contextKey = "request_user"
)

// RequestUser is filled in by WithUser so that middleware running before
// authentication can still see who the request belonged to.
type RequestUser struct {
	ID string
}

func WithRequestUser(ctx context.Context, holder *RequestUser) context.Context {
	return context.WithValue(ctx, RequestKey, holder)
}

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	if holder, ok := ctx.Value(RequestKey).(*RequestUser); ok && user != nil {
		holder.ID = user.ID
	}
	return context.WithValue(ctx, UserKey, user)
}

// Session returns the visitor session, or an empty one when the session
// middleware did not run.
func Session(ctx context.Context) *session.Session {
	s, _ := ctx.Value(SessionKey).(*session.Session)
	if s == nil {
		return &session.Session{}
	}
	return s
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
