package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui"
	"github.com/templui/homerender/internal/ui/pages"
)

type galleryHandler struct {
	base
	galleryService *service.GalleryService
}

func NewGalleryHandler(galleryService *service.GalleryService, sessions *session.Manager) *galleryHandler {
	return &galleryHandler{
		base:           base{sessions: sessions},
		galleryService: galleryService,
	}
}

// GalleryPage lists the logged-in user's renderings.
func (h *galleryHandler) GalleryPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	sess := ctxkeys.Session(r.Context())

	g, err := h.galleryService.ForUser(user.ID, sess.TakeNew())
	if err != nil {
		slog.Error("failed to load gallery", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load gallery", http.StatusInternalServerError)
		return
	}

	p := h.page(w, r, "Your gallery")
	ui.Render(w, r, pages.Gallery(p, pages.GalleryData{
		Gallery:      g,
		Rooms:        catalog.RoomsFor(sess.Description),
		Description:  sess.Description,
		SlideshowURL: "/slideshow",
	}))
}

// SessionGalleryPage lists the renderings this browser session created
// without an account.
func (h *galleryHandler) SessionGalleryPage(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())

	g, err := h.galleryService.ForGuest(sess.GuestIDs, sess.TakeNew())
	if err != nil {
		slog.Error("failed to load session gallery", "error", err)
		http.Error(w, "Failed to load gallery", http.StatusInternalServerError)
		return
	}

	p := h.page(w, r, "Session gallery")
	ui.Render(w, r, pages.Gallery(p, pages.GalleryData{
		Gallery:      g,
		Rooms:        catalog.RoomsFor(sess.Description),
		Description:  sess.Description,
		Guest:        true,
		SlideshowURL: "/session_slideshow",
	}))
}

// BulkAction toggles liked or favorited on the selected renderings. The
// ids field holds a JSON array.
func (h *galleryHandler) BulkAction(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Please log in to like or favorite renderings.")
		return
	}

	var ids []string
	err := json.Unmarshal([]byte(r.FormValue("ids")), &ids)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid selection.")
		return
	}
	if len(ids) == 0 {
		writeJSONError(w, http.StatusBadRequest, "Select at least one rendering.")
		return
	}

	n, err := h.galleryService.BulkToggle(user.ID, r.FormValue("action"), ids)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			writeJSONError(w, http.StatusBadRequest, "Unknown action.")
			return
		}
		slog.Error("bulk action failed", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Updated %d renderings.", n)})
}

func (h *galleryHandler) SlideshowPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	renderings, err := h.galleryService.Slideshow(user.ID)
	if err != nil {
		slog.Error("failed to load slideshow", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load slideshow", http.StatusInternalServerError)
		return
	}
	if renderings == nil {
		h.flashRedirect(w, r, session.FlashInfo, fmt.Sprintf("Favorite at least %d renderings to start a slideshow.", service.MinSlideshowItems), "/gallery")
		return
	}

	p := h.page(w, r, "Slideshow")
	ui.Render(w, r, pages.Slideshow(p, renderings, "/gallery"))
}

func (h *galleryHandler) SessionSlideshowPage(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())

	renderings, err := h.galleryService.GuestSlideshow(sess.GuestIDs)
	if err != nil {
		slog.Error("failed to load session slideshow", "error", err)
		http.Error(w, "Failed to load slideshow", http.StatusInternalServerError)
		return
	}
	if renderings == nil {
		h.flashRedirect(w, r, session.FlashInfo, fmt.Sprintf("Create at least %d renderings to start a slideshow.", service.MinSlideshowItems), "/session_gallery")
		return
	}

	p := h.page(w, r, "Slideshow")
	ui.Render(w, r, pages.Slideshow(p, renderings, "/session_gallery"))
}
