package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// maxPromptLog caps logged prompts; a full exterior prompt runs to several
// hundred characters.
const maxPromptLog = 160

// Init installs the default logger and returns a function that flushes
// pending Sentry events. Development logs text at debug level, production
// logs JSON at info. Errors also go to Sentry when a DSN is set.
func Init(isDev bool, sentryDSN, env string) (flush func()) {
	slog.SetDefault(New(os.Stdout, isDev, sentryDSN, env))
	return func() { sentry.Flush(2 * time.Second) }
}

// New builds the handler stack without touching the global default.
func New(w io.Writer, isDev bool, sentryDSN, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: shortenPrompt}

	var console slog.Handler
	if isDev {
		opts.Level = slog.LevelDebug
		console = slog.NewTextHandler(w, opts)
	} else {
		console = slog.NewJSONHandler(w, opts)
	}

	handler := console
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      env,
			TracesSampleRate: 0.2,
		})
		if err != nil {
			slog.New(console).Warn("sentry disabled", "error", err)
		} else {
			handler = slogmulti.Fanout(console, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return slog.New(handler).With("service", "homerender")
}

func shortenPrompt(groups []string, a slog.Attr) slog.Attr {
	if a.Key != "prompt" || a.Value.Kind() != slog.KindString {
		return a
	}
	if s := a.Value.String(); len(s) > maxPromptLog {
		return slog.String(a.Key, s[:maxPromptLog]+"...")
	}
	return a
}
