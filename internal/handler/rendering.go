package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/homerender/internal/ctxkeys"
	"github.com/templui/homerender/internal/generation"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/validation"
)

type renderingHandler struct {
	base
	renderingService *service.RenderingService
	imageService     *service.ImageService
	maxPlanSize      int64
}

func NewRenderingHandler(renderingService *service.RenderingService, imageService *service.ImageService, sessions *session.Manager, maxPlanSize int64) *renderingHandler {
	return &renderingHandler{
		base:             base{sessions: sessions},
		renderingService: renderingService,
		imageService:     imageService,
		maxPlanSize:      maxPlanSize,
	}
}

// renderingResponse is the JSON body returned for a room or modify request.
type renderingResponse struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Subcategory string `json:"subcategory"`
	Message     string `json:"message"`
}

// Generate handles the home form: it stores the description and the
// optional plan, then renders both exterior views.
func (h *renderingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())
	description := strings.TrimSpace(r.FormValue("description"))
	sess.SetDescription(description)

	if err := h.storePlan(r); err != nil {
		message := "The house plan could not be saved. Please try again."
		switch {
		case errors.Is(err, validation.ErrPlanTooLarge):
			message = fmt.Sprintf("The house plan is larger than %d MB.", h.maxPlanSize>>20)
		case errors.Is(err, validation.ErrPlanType):
			message = "The house plan must be a PNG, JPEG or WebP image or a PDF."
		}
		h.flashRedirect(w, r, session.FlashError, message, "/")
		return
	}

	req := requester(r)
	created, err := h.renderingService.GenerateExterior(r.Context(), req, description)
	h.remember(sess, req, created...)

	switch {
	case err == nil:
		sess.AddFlash(session.FlashSuccess, "Your exterior renderings are ready.")
	case len(created) > 0:
		_, message := renderingStatus(err)
		sess.AddFlash(session.FlashWarning, "The front exterior was rendered, but the back exterior failed. "+message)
	default:
		_, message := renderingStatus(err)
		if !errors.Is(err, generation.ErrConfiguration) {
			slog.Error("exterior generation failed", "error", err)
		}
		sess.AddFlash(session.FlashError, message)
	}

	h.save(w, sess)
	http.Redirect(w, r, galleryURL(r), http.StatusSeeOther)
}

// storePlan saves the uploaded plan if there is one. A form without a plan
// is not an error.
func (h *renderingHandler) storePlan(r *http.Request) error {
	file, header, err := r.FormFile("plan")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		slog.Warn("failed to read plan upload", "error", err)
		return err
	}
	defer file.Close()

	if header.Filename == "" && header.Size == 0 {
		return nil
	}

	ext, err := validation.ValidatePlan(header, h.maxPlanSize)
	if err != nil {
		slog.Info("plan upload rejected", "error", err, "filename", header.Filename, "size", header.Size)
		return err
	}

	rel, err := h.imageService.StorePlan(r.Context(), file, ext)
	if err != nil {
		slog.Error("failed to store plan", "error", err)
		return err
	}
	slog.Info("plan stored", "path", rel)
	return nil
}

func (h *renderingHandler) GenerateRoom(w http.ResponseWriter, r *http.Request) {
	subcategory := r.FormValue("subcategory")
	description := h.description(r)
	req := requester(r)

	rendering, err := h.renderingService.GenerateRoom(r.Context(), req, subcategory, r.PostForm, description)
	if err != nil {
		h.fail(w, err, "room generation failed", "subcategory", subcategory)
		return
	}

	h.respond(w, r, req, rendering, rendering.Subcategory+" rendered.")
}

func (h *renderingHandler) Modify(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	description := h.description(r) // parses the form, filling r.PostForm
	req := requester(r)

	rendering, err := h.renderingService.Modify(r.Context(), req, id, r.PostForm, description)
	if err != nil {
		h.fail(w, err, "modify failed", "rendering_id", id)
		return
	}

	h.respond(w, r, req, rendering, "Modified "+rendering.Subcategory+" rendered.")
}

// description prefers the submitted description and falls back to the one
// from the home form.
func (h *renderingHandler) description(r *http.Request) string {
	if d := strings.TrimSpace(r.FormValue("description")); d != "" {
		return d
	}
	return ctxkeys.Session(r.Context()).Description
}

func (h *renderingHandler) respond(w http.ResponseWriter, r *http.Request, req service.Requester, rendering *model.Rendering, message string) {
	sess := ctxkeys.Session(r.Context())
	h.remember(sess, req, rendering)
	h.save(w, sess)

	writeJSON(w, http.StatusOK, renderingResponse{
		ID:          rendering.ID,
		Path:        rendering.ImageURL,
		Subcategory: rendering.Subcategory,
		Message:     message,
	})
}

func (h *renderingHandler) fail(w http.ResponseWriter, err error, msg string, args ...any) {
	status, message := renderingStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		slog.Error(msg, append(args, "error", err)...)
	}
	writeJSONError(w, status, message)
}

// remember marks fresh renderings for the gallery's new section; guests
// also keep their ids in the session since it is their only claim to them.
func (h *renderingHandler) remember(sess *session.Session, req service.Requester, renderings ...*model.Rendering) {
	ids := make([]string, 0, len(renderings))
	for _, rendering := range renderings {
		ids = append(ids, rendering.ID)
	}
	if len(ids) == 0 {
		return
	}
	if req.IsGuest() {
		if dropped := sess.AddGuestIDs(ids...); dropped > 0 {
			sess.AddFlash(session.FlashWarning, guestListFullMessage(dropped))
		}
	}
	sess.MarkNew(ids...)
}

func guestListFullMessage(dropped int) string {
	what := "Your oldest session rendering is"
	if dropped > 1 {
		what = fmt.Sprintf("Your %d oldest session renderings are", dropped)
	}
	return what + " no longer reachable from this browser. Register to keep your renderings."
}
