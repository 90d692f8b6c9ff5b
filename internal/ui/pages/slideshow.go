package pages

import (
	"github.com/a-h/templ"

	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/ui"
)

const slideshowScript = `
(function () {
  var slides = document.querySelectorAll("[data-slide]");
  var i = 0;
  function show(n) {
    slides[i].classList.add("hidden");
    i = (n + slides.length) % slides.length;
    slides[i].classList.remove("hidden");
  }
  document.querySelector("[data-prev]").addEventListener("click", function () { show(i - 1); });
  document.querySelector("[data-next]").addEventListener("click", function () { show(i + 1); });
  setInterval(function () { show(i + 1); }, 5000);
})();
`

func Slideshow(p Page, renderings []*model.Rendering, backURL string) templ.Component {
	return Layout(p, ui.Component(func(h *ui.Writer) {
		h.Raw(`<div class="flex items-center gap-2">`)
		h.Rawf(`<h1 class="text-3xl font-semibold">%s</h1>`, ui.Esc(p.Title))
		h.Rawf(`<a href="%s" class="%s">Back to gallery</a></div>`, ui.URL(backURL), ui.ButtonClass("ghost", "ml-auto"))

		h.Rawf(`<div class="%s">`, ui.CardClass("relative"))
		for i, r := range renderings {
			hidden := ""
			if i > 0 {
				hidden = " hidden"
			}
			h.Rawf(`<figure data-slide class="space-y-2%s"><img src="%s" alt="%s" class="w-full object-contain">`, hidden, ui.URL(r.ImageURL), ui.Esc(r.Subcategory))
			h.Rawf(`<figcaption class="px-4 pb-4 text-sm text-stone-600">%s</figcaption></figure>`, ui.Esc(r.Subcategory))
		}
		h.Raw(`</div><div class="flex justify-center gap-2">`)
		h.Rawf(`<button data-prev class="%s">Previous</button><button data-next class="%s">Next</button></div>`,
			ui.ButtonClass("secondary"), ui.ButtonClass("secondary"))

		script(h, slideshowScript)
	}))
}
