package handler

import (
	"net/http"

	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui"
	"github.com/templui/homerender/internal/ui/pages"
)

type homeHandler struct {
	base
}

func NewHomeHandler(sessions *session.Manager) *homeHandler {
	return &homeHandler{base: base{sessions: sessions}}
}

func (h *homeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	description := ctxkeys.Session(r.Context()).Description
	p := h.page(w, r, "")
	ui.Render(w, r, pages.Home(p, pages.HomeData{
		Rooms:       catalog.RoomsFor(description),
		Description: description,
	}))
}

func (h *homeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	p := h.page(w, r, "Not found")
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(p))
}
