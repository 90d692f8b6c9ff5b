package pages

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestGalleryPage(t *testing.T) {
	ctx := templ.WithNonce(ctxkeys.WithCSRFToken(context.Background(), "tok"), "n0nce")
	g := &service.Gallery{
		Main: []*model.Rendering{{
			ID:          "r1",
			Subcategory: "Kitchen",
			Options:     model.Options{"Countertops": "Quartz", "Island": "None"},
			ImageURL:    "/static/renderings/r1.png",
			Favorited:   true,
			CreatedAt:   time.Now(),
		}},
		SlideshowEligible: true,
	}

	html := render(t, ctx, Gallery(Page{Title: "My gallery", Flashes: []session.Flash{{Category: "success", Message: "Done <3"}}}, GalleryData{
		Gallery:      g,
		Rooms:        []string{"Kitchen", "Basement: Gym"},
		Description:  `a "cozy" basement`,
		SlideshowURL: "/slideshow",
	}))

	assert.Contains(t, html, `Done &lt;3`)
	assert.Contains(t, html, `/modify_rendering/r1`)
	assert.Contains(t, html, "Countertops: Quartz")
	assert.NotContains(t, html, "Island: None")
	assert.Contains(t, html, `href="/slideshow"`)
	assert.Contains(t, html, `<script nonce="n0nce">`)
	assert.Contains(t, html, `value="Basement: Gym"`)
	assert.Contains(t, html, `a &#34;cozy&#34; basement`)
	assert.Contains(t, html, `action="/bulk_action"`)
	assert.Contains(t, html, `content="tok"`)
}

func TestGuestGalleryHidesBulkActions(t *testing.T) {
	html := render(t, context.Background(), Gallery(Page{Title: "Session gallery"}, GalleryData{
		Gallery: &service.Gallery{},
		Guest:   true,
	}))

	assert.NotContains(t, html, "/bulk_action")
	assert.Contains(t, html, "Nothing here yet")
}

func TestHomeListsRooms(t *testing.T) {
	html := render(t, context.Background(), Home(Page{}, HomeData{Rooms: []string{"Living Room", "Half Bath"}}))

	assert.Contains(t, html, "Living Room")
	assert.Contains(t, html, `enctype="multipart/form-data"`)
}

func TestLoginShowsErrorAndKeepsEmail(t *testing.T) {
	html := render(t, context.Background(), Login(Page{Title: "Log in"}, AuthForm{Email: "ana@example.com", Error: "invalid email or password", Next: "/slideshow"}))

	assert.Contains(t, html, `value="ana@example.com"`)
	assert.Contains(t, html, "invalid email or password")
	assert.Contains(t, html, `name="next" value="/slideshow"`)
	assert.NotContains(t, html, `name="name"`)
}

func TestLayoutMarksCurrentNavLink(t *testing.T) {
	ctx := ctxkeys.WithURLPath(context.Background(), "/session_gallery")
	html := render(t, ctx, NotFound(Page{Title: "Not found"}))

	assert.Contains(t, html, `href="/session_gallery" class="`)
	assert.Regexp(t, `href="/session_gallery" class="[^"]*font-semibold`, html)
	assert.NotRegexp(t, `href="/login" class="[^"]*font-semibold`, html)
}

func TestSlideshowSanitizesBackLink(t *testing.T) {
	html := render(t, context.Background(), Slideshow(Page{Title: "Slideshow"}, nil, "javascript:alert(1)"))
	assert.NotContains(t, html, "javascript:alert")
}
