package pages

import (
	"github.com/a-h/templ"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui"
)

// Page holds what every page passes to the layout.
type Page struct {
	Title   string
	Flashes []session.Flash
}

func Layout(p Page, content templ.Component) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Context()
		appName := "Architect"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}

		title := appName
		if p.Title != "" {
			title = p.Title + " | " + appName
		}

		h.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Rawf(`<meta name="csrf-token" content="%s">`, ui.Esc(ctxkeys.CSRFToken(ctx)))
		h.Rawf(`<title>%s</title>`, ui.Esc(title))
		h.Raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		h.Raw(`</head><body class="min-h-screen bg-stone-50 text-stone-900">`)

		h.Raw(`<header class="border-b border-stone-200 bg-white"><nav class="mx-auto flex max-w-6xl items-center gap-4 px-4 py-3">`)
		h.Rawf(`<a href="/" class="font-semibold">%s</a><div class="ml-auto flex items-center gap-2">`, ui.Esc(appName))
		if user := ctxkeys.User(ctx); user != nil {
			navLink(h, "/gallery", "My gallery")
			navLink(h, "/slideshow", "Slideshow")
			h.Rawf(`<span class="text-sm text-stone-500">%s</span>`, ui.Esc(user.DisplayName()))
			h.Rawf(`<a href="/logout" class="%s">Log out</a>`, ui.ButtonClass("secondary"))
		} else {
			navLink(h, "/session_gallery", "Session gallery")
			navLink(h, "/login", "Log in")
			h.Rawf(`<a href="/register" class="%s">Register</a>`, ui.ButtonClass("primary"))
		}
		h.Raw(`</div></nav></header>`)

		h.Raw(`<main class="mx-auto max-w-6xl space-y-6 px-4 py-8">`)
		for _, f := range p.Flashes {
			h.Rawf(`<div class="%s" role="alert">%s</div>`, ui.FlashClass(f.Category), ui.Esc(f.Message))
		}
		h.Render(content)
		h.Raw(`</main></body></html>`)
	})
}

func navLink(h *ui.Writer, href, label string) {
	class := ui.ButtonClass("ghost")
	if ctxkeys.URLPath(h.Context()) == href {
		class = ui.ButtonClass("ghost", "bg-stone-100 font-semibold")
	}
	h.Rawf(`<a href="%s" class="%s">%s</a>`, ui.URL(href), class, ui.Esc(label))
}

// jsonFormScript submits forms marked data-json with fetch and reloads on
// success. Errors are shown in the form's [data-status] element.
const jsonFormScript = `
document.querySelectorAll("form[data-json]").forEach(function (form) {
  form.addEventListener("submit", async function (ev) {
    ev.preventDefault();
    var status = form.querySelector("[data-status]");
    var data = new FormData(form, ev.submitter);
    if (form.dataset.collect) {
      var ids = Array.from(document.querySelectorAll(form.dataset.collect + ":checked")).map(function (el) { return el.value; });
      data.set("ids", JSON.stringify(ids));
    }
    if (status) status.textContent = "Working...";
    form.querySelectorAll("button").forEach(function (b) { b.disabled = true; });
    try {
      var res = await fetch(form.action, {
        method: "POST",
        body: data,
        headers: {
          "Accept": "application/json",
          "X-CSRF-Token": document.querySelector('meta[name="csrf-token"]').content
        }
      });
      var body = await res.json().catch(function () { return {error: res.statusText}; });
      if (!res.ok) throw new Error(body.error || res.statusText);
      window.location.reload();
    } catch (err) {
      if (status) status.textContent = err.message;
      form.querySelectorAll("button").forEach(function (b) { b.disabled = false; });
    }
  });
});
`

func script(h *ui.Writer, js string) {
	h.Rawf(`<script nonce="%s">%s</script>`, ui.Esc(templ.GetNonce(h.Context())), js)
}
