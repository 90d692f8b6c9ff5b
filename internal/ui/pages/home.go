package pages

import (
	"github.com/a-h/templ"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui"
)

type HomeData struct {
	Rooms       []string
	Description string
}

func Home(p Page, d HomeData) templ.Component {
	return Layout(p, ui.Component(func(h *ui.Writer) {
		h.Raw(`<section class="space-y-2"><h1 class="text-3xl font-semibold">Design your home</h1>`)
		h.Raw(`<p class="text-stone-600">Describe the house and we will render the front and back exterior. Room renderings follow in your gallery.</p></section>`)

		h.Rawf(`<form method="post" action="/generate" enctype="multipart/form-data" class="%s">`, ui.CardClass("space-y-4 p-6"))
		h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, ui.Esc(ctxkeys.CSRFToken(h.Context())))
		h.Raw(`<label class="block space-y-1"><span class="text-sm font-medium">Home description</span>`)
		h.Rawf(`<textarea name="description" rows="4" maxlength="%d" class="%s" placeholder="A two-story modern farmhouse with a finished basement and a pool">%s</textarea></label>`,
			session.MaxDescriptionRunes, ui.InputClass(), ui.Esc(d.Description))
		h.Raw(`<label class="block space-y-1"><span class="text-sm font-medium">House plan (optional, image or PDF)</span>`)
		h.Rawf(`<input type="file" name="plan" accept="image/png,image/jpeg,image/webp,application/pdf" class="%s"></label>`, ui.InputClass("border-dashed"))
		h.Rawf(`<button type="submit" class="%s">Generate exterior</button>`, ui.ButtonClass("primary"))
		h.Raw(`</form>`)

		h.Raw(`<section class="space-y-2"><h2 class="text-lg font-semibold">Rooms you can render next</h2><ul class="flex flex-wrap gap-2">`)
		for _, room := range d.Rooms {
			h.Rawf(`<li class="rounded-full bg-stone-200 px-3 py-1 text-sm">%s</li>`, ui.Esc(room))
		}
		h.Raw(`</ul></section>`)
	}))
}

func NotFound(p Page) templ.Component {
	return Layout(p, ui.Component(func(h *ui.Writer) {
		h.Raw(`<section class="space-y-2 py-16 text-center"><h1 class="text-3xl font-semibold">Page not found</h1>`)
		h.Rawf(`<p><a href="/" class="%s">Back home</a></p></section>`, ui.ButtonClass("secondary"))
	}))
}
