package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentEscapesText(t *testing.T) {
	c := Component(func(h *Writer) {
		h.Raw("<p>")
		h.Text(`<script>alert("x")</script>`)
		h.Raw("</p>")
	})

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))

	assert.True(t, strings.HasPrefix(buf.String(), "<p>&lt;script&gt;"))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestButtonClassOverrides(t *testing.T) {
	got := ButtonClass("primary", "px-8")
	assert.Contains(t, got, "px-8")
	assert.NotContains(t, got, "px-4")
	assert.Contains(t, got, "bg-stone-900")
}

func TestRenderStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderStatus(rec, httptest.NewRequest(http.MethodGet, "/login", nil), http.StatusUnauthorized,
		Component(func(h *Writer) { h.Raw("<form></form>") }))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<form></form>", rec.Body.String())

	broken := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<p>half")
		return errors.New("boom")
	})
	rec = httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), broken)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half")
}

func TestURLSanitizesAttributes(t *testing.T) {
	assert.Equal(t, "/slideshow", URL("/slideshow"))
	assert.Equal(t, "https://bucket.example/renderings/a.png?X-Amz-Date=1&amp;X-Amz-Expires=900",
		URL("https://bucket.example/renderings/a.png?X-Amz-Date=1&X-Amz-Expires=900"))
	assert.NotContains(t, URL("javascript:alert(1)"), "javascript")
	assert.NotContains(t, URL(`/x" onmouseover="alert(1)`), `"`)
}
