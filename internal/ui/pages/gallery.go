package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/ui"
)

type GalleryData struct {
	Gallery      *service.Gallery
	Rooms        []string
	Description  string
	Guest        bool
	SlideshowURL string
}

func Gallery(p Page, d GalleryData) templ.Component {
	return Layout(p, ui.Component(func(h *ui.Writer) {
		csrf := ctxkeys.CSRFToken(h.Context())

		h.Raw(`<div class="flex flex-wrap items-center gap-3">`)
		h.Rawf(`<h1 class="text-3xl font-semibold">%s</h1>`, ui.Esc(p.Title))
		if d.Gallery.SlideshowEligible {
			h.Rawf(`<a href="%s" class="%s">Start slideshow</a>`, ui.URL(d.SlideshowURL), ui.ButtonClass("secondary", "ml-auto"))
		}
		h.Raw(`</div>`)

		if d.Guest {
			h.Raw(`<p class="text-sm text-stone-600">These renderings live in this browser session only. <a class="underline" href="/register">Create an account</a> to like, favorite and keep them.</p>`)
		} else {
			h.Raw(`<form action="/bulk_action" data-json data-collect="input[name=select]" class="flex items-center gap-2">`)
			h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, ui.Esc(csrf))
			h.Rawf(`<button name="action" value="%s" class="%s">Like selected</button>`, service.ActionLike, ui.ButtonClass("secondary"))
			h.Rawf(`<button name="action" value="%s" class="%s">Favorite selected</button>`, service.ActionFavorite, ui.ButtonClass("secondary"))
			h.Raw(`<span data-status class="text-sm text-stone-500"></span></form>`)
		}

		if len(d.Gallery.New) > 0 {
			h.Raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">New renderings</h2>`)
			grid(h, d.Gallery.New, d.Description, csrf, d.Guest)
			h.Raw(`</section>`)
		}

		h.Raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">All renderings</h2>`)
		if len(d.Gallery.Main) == 0 && len(d.Gallery.New) == 0 {
			h.Raw(`<p class="text-stone-500">Nothing here yet. <a class="underline" href="/">Describe your home</a> to get started.</p>`)
		} else {
			grid(h, d.Gallery.Main, d.Description, csrf, d.Guest)
		}
		h.Raw(`</section>`)

		h.Raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">Render a room</h2><div class="grid gap-4 md:grid-cols-2">`)
		for _, room := range d.Rooms {
			h.Rawf(`<form action="/generate_room" data-json class="%s">`, ui.CardClass("space-y-3 p-4"))
			h.Rawf(`<h3 class="font-medium">%s</h3>`, ui.Esc(room))
			h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, ui.Esc(csrf))
			h.Rawf(`<input type="hidden" name="subcategory" value="%s">`, ui.Esc(room))
			h.Rawf(`<input type="hidden" name="description" value="%s">`, ui.Esc(d.Description))
			attributeSelects(h, room, nil)
			h.Rawf(`<button type="submit" class="%s">Generate</button> <span data-status class="text-sm text-stone-500"></span></form>`, ui.ButtonClass("primary"))
		}
		h.Raw(`</div></section>`)

		script(h, jsonFormScript)
	}))
}

func grid(h *ui.Writer, renderings []*model.Rendering, description, csrf string, guest bool) {
	h.Raw(`<div class="grid gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
	for _, r := range renderings {
		card(h, r, description, csrf, guest)
	}
	h.Raw(`</div>`)
}

func card(h *ui.Writer, r *model.Rendering, description, csrf string, guest bool) {
	h.Rawf(`<article class="%s">`, ui.CardClass())
	h.Rawf(`<img src="%s" alt="%s" class="aspect-square w-full object-cover" loading="lazy">`, ui.URL(r.ImageURL), ui.Esc(r.Subcategory))
	h.Raw(`<div class="space-y-2 p-4"><div class="flex items-center gap-2">`)
	if !guest {
		h.Rawf(`<input type="checkbox" name="select" value="%s" aria-label="Select">`, ui.Esc(r.ID))
	}
	h.Rawf(`<h3 class="font-medium">%s</h3>`, ui.Esc(r.Subcategory))
	if r.Liked {
		h.Raw(`<span class="text-xs text-rose-600">Liked</span>`)
	}
	if r.Favorited {
		h.Raw(`<span class="text-xs text-amber-600">Favorite</span>`)
	}
	h.Raw(`</div>`)

	if summary := catalog.Summary(catalog.Ordered(r.Subcategory, r.Options)); summary != "" {
		h.Rawf(`<p class="text-sm text-stone-600">%s</p>`, ui.Esc(summary))
	}
	h.Rawf(`<p class="text-xs text-stone-400">%s</p>`, r.CreatedAt.Local().Format("Jan 2, 2006 15:04"))

	if len(catalog.Attributes(r.Subcategory)) > 0 {
		h.Raw(`<details><summary class="cursor-pointer text-sm underline">Modify</summary>`)
		h.Rawf(`<form action="%s" data-json class="mt-2 space-y-2">`, ui.URL("/modify_rendering/"+url.PathEscape(r.ID)))
		h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, ui.Esc(csrf))
		h.Rawf(`<input type="text" name="description" value="%s" class="%s" placeholder="Style description">`, ui.Esc(description), ui.InputClass())
		attributeSelects(h, r.Subcategory, r.Options)
		h.Rawf(`<button type="submit" class="%s">Render variation</button> <span data-status class="text-sm text-stone-500"></span></form></details>`, ui.ButtonClass("secondary"))
	}
	h.Raw(`</div></article>`)
}

// attributeSelects renders one select per catalog attribute. The empty
// option keeps the stored value when modifying.
func attributeSelects(h *ui.Writer, subcategory string, current model.Options) {
	for _, a := range catalog.Attributes(subcategory) {
		h.Rawf(`<label class="block space-y-1"><span class="text-xs font-medium text-stone-600">%s</span>`, ui.Esc(a.Name))
		h.Rawf(`<select name="%s" class="%s"><option value="">Keep / designer's choice</option>`, ui.Esc(a.Name), ui.InputClass("py-1"))
		for _, v := range a.Values {
			selected := ""
			if current[a.Name] == v {
				selected = " selected"
			}
			h.Rawf(`<option value="%s"%s>%s</option>`, ui.Esc(v), selected, ui.Esc(v))
		}
		h.Raw(`</select></label>`)
	}
}
