package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/generation"
	"github.com/templui/homerender/internal/repository"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui/pages"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// renderingStatus maps a rendering or generation failure to the status and
// message shown to the visitor.
func renderingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrRenderingNotFound):
		return http.StatusNotFound, "Rendering not found."
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "You do not have permission to modify this rendering."
	case errors.Is(err, service.ErrUnknownSubcategory):
		return http.StatusBadRequest, "Unknown room or view."
	case errors.Is(err, generation.ErrConfiguration):
		return http.StatusServiceUnavailable, "Image generation is not configured. Please contact the site administrator."
	case errors.Is(err, generation.ErrGeneration):
		return http.StatusBadGateway, "Image generation failed. Please try again."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

// page takes the pending flashes out of the session and persists it, so it
// must run before anything is written to w.
func (b base) page(w http.ResponseWriter, r *http.Request, title string) pages.Page {
	sess := ctxkeys.Session(r.Context())
	p := pages.Page{Title: title, Flashes: sess.TakeFlashes()}
	b.save(w, sess)
	return p
}

func (b base) save(w http.ResponseWriter, sess *session.Session) {
	err := b.sessions.Save(w, sess)
	if err != nil {
		slog.Error("failed to save session", "error", err)
	}
}

// flashRedirect queues a message for the next page and redirects to it.
func (b base) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, to string) {
	sess := ctxkeys.Session(r.Context())
	sess.AddFlash(category, message)
	b.save(w, sess)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

type base struct {
	sessions *session.Manager
}

// requester identifies who is acting on renderings for this request.
func requester(r *http.Request) service.Requester {
	req := service.Requester{GuestIDs: ctxkeys.Session(r.Context()).GuestIDs}
	if user := ctxkeys.User(r.Context()); user != nil {
		req.UserID = user.ID
	}
	return req
}

func galleryURL(r *http.Request) string {
	if ctxkeys.User(r.Context()) != nil {
		return "/gallery"
	}
	return "/session_gallery"
}

// safeNext only accepts local absolute paths as post-login targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/gallery"
	}
	return next
}
