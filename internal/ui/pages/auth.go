package pages

import (
	"github.com/a-h/templ"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/ui"
)

// AuthForm carries the submitted values back when a form is rejected.
type AuthForm struct {
	Email string
	Name  string
	Next  string
	Error string
}

func Login(p Page, f AuthForm) templ.Component {
	return authPage(p, "Log in", "/login", f, false)
}

func Register(p Page, f AuthForm) templ.Component {
	return authPage(p, "Create an account", "/register", f, true)
}

func authPage(p Page, heading, action string, f AuthForm, withName bool) templ.Component {
	return Layout(p, ui.Component(func(h *ui.Writer) {
		h.Rawf(`<div class="%s">`, ui.CardClass("mx-auto max-w-md space-y-4 p-6"))
		h.Rawf(`<h1 class="text-2xl font-semibold">%s</h1>`, ui.Esc(heading))
		if f.Error != "" {
			h.Rawf(`<div class="%s" role="alert">%s</div>`, ui.FlashClass("error"), ui.Esc(f.Error))
		}

		h.Rawf(`<form method="post" action="%s" class="space-y-4">`, ui.URL(action))
		h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, ui.Esc(ctxkeys.CSRFToken(h.Context())))
		if f.Next != "" {
			h.Rawf(`<input type="hidden" name="next" value="%s">`, ui.Esc(f.Next))
		}
		if withName {
			field(h, "Name", "name", "text", f.Name, "name")
		}
		field(h, "Email", "email", "email", f.Email, "email")
		autocomplete := "current-password"
		if withName {
			autocomplete = "new-password"
		}
		field(h, "Password", "password", "password", "", autocomplete)
		h.Rawf(`<button type="submit" class="%s">%s</button>`, ui.ButtonClass("primary", "w-full"), ui.Esc(heading))
		h.Raw(`</form>`)

		if withName {
			h.Raw(`<p class="text-sm text-stone-600">Already registered? <a class="underline" href="/login">Log in</a></p>`)
		} else {
			h.Raw(`<p class="text-sm text-stone-600">No account yet? <a class="underline" href="/register">Register</a></p>`)
		}
		h.Raw(`</div>`)
	}))
}

func field(h *ui.Writer, label, name, typ, value, autocomplete string) {
	h.Rawf(`<label class="block space-y-1"><span class="text-sm font-medium">%s</span>`, ui.Esc(label))
	h.Rawf(`<input type="%s" name="%s" value="%s" autocomplete="%s" class="%s" required></label>`,
		typ, name, ui.Esc(value), autocomplete, ui.InputClass())
}
