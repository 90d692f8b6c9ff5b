package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates HTML and keeps the first write error, so components
// can emit markup without checking every call.
type Writer struct {
	w   io.Writer
	ctx context.Context
	err error
}

// Component adapts a markup function to templ.Component.
func Component(fn func(h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &Writer{w: w, ctx: ctx}
		fn(h)
		return h.err
	})
}

// Raw writes trusted markup.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Rawf formats trusted markup. Untrusted arguments go through Esc.
func (h *Writer) Rawf(format string, args ...any) {
	h.Raw(fmt.Sprintf(format, args...))
}

// Text writes escaped text.
func (h *Writer) Text(s string) {
	h.Raw(Esc(s))
}

// Render embeds a child component.
func (h *Writer) Render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Context returns the request context the component renders in.
func (h *Writer) Context() context.Context {
	return h.ctx
}

// Esc escapes s for HTML text and quoted attribute values.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// URL sanitizes s for an href, src or action attribute. Unsafe schemes such
// as javascript: become templ's inert placeholder URL.
func URL(s string) string {
	return templ.EscapeString(string(templ.URL(s)))
}
