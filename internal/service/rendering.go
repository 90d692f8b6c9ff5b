package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/generation"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/prompt"
	"github.com/templui/homerender/internal/repository"
)

var (
	ErrPermissionDenied   = errors.New("you do not have permission to modify this rendering")
	ErrUnknownSubcategory = errors.New("unknown room or view")
)

// Requester is whoever triggered a generation: a logged-in user, or an
// anonymous visitor holding the guest ids from their session.
type Requester struct {
	UserID   string
	GuestIDs []string
}

func (r Requester) IsGuest() bool {
	return r.UserID == ""
}

// owner is the user_id stored on rows this requester creates.
func (r Requester) owner() *string {
	if r.IsGuest() {
		return nil
	}
	id := r.UserID
	return &id
}

// CanModify reports whether the requester created the rendering. A logged-in
// user must own the row; guest ids in their session do not count. A guest
// needs the id in their session and the row must still be guest-owned.
func (r Requester) CanModify(rendering *model.Rendering) bool {
	if !r.IsGuest() {
		return rendering.OwnedBy(r.UserID)
	}
	return rendering.IsGuestOwned() && slices.Contains(r.GuestIDs, rendering.ID)
}

// RenderingService runs generations and records their results.
type RenderingService struct {
	renderingRepository repository.RenderingRepository
	imageService        *ImageService
	generator           generation.Generator
}

func NewRenderingService(
	renderingRepository repository.RenderingRepository,
	imageService *ImageService,
	generator generation.Generator,
) *RenderingService {
	return &RenderingService{
		renderingRepository: renderingRepository,
		imageService:        imageService,
		generator:           generator,
	}
}

// SubmittedOptions reads the catalog attributes of subcategory from a form.
// Unknown fields and blank values are dropped.
func SubmittedOptions(subcategory string, form url.Values) model.Options {
	opts := model.Options{}
	for _, name := range catalog.AttributeNames(subcategory) {
		v := strings.TrimSpace(form.Get(name))
		if v != "" {
			opts[name] = v
		}
	}
	return opts
}

// GenerateExterior renders the front of the house, then the back using the
// front image as a reference. When the back fails the front rendering is
// kept and returned together with the error.
func (s *RenderingService) GenerateExterior(ctx context.Context, req Requester, description string) ([]*model.Rendering, error) {
	frontPrompt := prompt.Build(model.SubcategoryFrontExterior, nil, description, false)
	front, err := s.render(ctx, req, model.CategoryExterior, model.SubcategoryFrontExterior, model.Options{}, frontPrompt, nil)
	if err != nil {
		return nil, fmt.Errorf("front exterior: %w", err)
	}

	created := []*model.Rendering{front}

	reference, err := s.imageService.Load(ctx, front.ImagePath)
	if err != nil {
		slog.Error("failed to load front exterior as reference", "error", err, "rendering_id", front.ID)
		return created, fmt.Errorf("back exterior: %w: %w", generation.ErrGeneration, err)
	}

	backPrompt := prompt.Build(model.SubcategoryBackExterior, nil, description, true)
	back, err := s.render(ctx, req, model.CategoryExterior, model.SubcategoryBackExterior, model.Options{}, backPrompt, reference)
	if err != nil {
		slog.Warn("back exterior failed, keeping front", "error", err, "front_id", front.ID)
		return created, fmt.Errorf("back exterior: %w", err)
	}

	return append(created, back), nil
}

// GenerateRoom renders one room from the submitted attribute fields.
func (s *RenderingService) GenerateRoom(ctx context.Context, req Requester, subcategory string, form url.Values, description string) (*model.Rendering, error) {
	if !catalog.Has(subcategory) || subcategory == model.SubcategoryFrontExterior || subcategory == model.SubcategoryBackExterior {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategory)
	}

	opts := SubmittedOptions(subcategory, form)
	p := prompt.Build(subcategory, catalog.Ordered(subcategory, opts), description, false)

	return s.render(ctx, req, model.CategoryRoom, subcategory, opts, p, nil)
}

// Modify renders a variation of an existing rendering. The original row is
// left untouched; the result is a new row with the merged options.
func (s *RenderingService) Modify(ctx context.Context, req Requester, id string, form url.Values, description string) (*model.Rendering, error) {
	original, err := s.renderingRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	if !req.CanModify(original) {
		slog.Warn("modify denied", "rendering_id", id, "user_id", req.UserID)
		return nil, ErrPermissionDenied
	}

	merged := model.Options{}
	for k, v := range original.Options {
		merged[k] = v
	}
	for k, v := range SubmittedOptions(original.Subcategory, form) {
		merged[k] = v
	}

	p := prompt.Build(original.Subcategory, catalog.Ordered(original.Subcategory, merged), description, false)

	return s.render(ctx, req, original.Category, original.Subcategory, merged, p, nil)
}

// render performs one generation and persists it. The image is written
// before the row so a row always points at an existing file.
func (s *RenderingService) render(ctx context.Context, req Requester, category, subcategory string, opts model.Options, p string, reference []byte) (*model.Rendering, error) {
	start := time.Now()

	data, err := s.generator.Generate(ctx, p, reference)
	if err != nil {
		return nil, err
	}

	rel, err := s.imageService.Store(ctx, data)
	if err != nil {
		return nil, err
	}

	rendering := &model.Rendering{
		ID:          uuid.New().String(),
		UserID:      req.owner(),
		Category:    category,
		Subcategory: subcategory,
		Options:     opts,
		Prompt:      p,
		ImagePath:   rel,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.renderingRepository.Create(rendering)
	if err != nil {
		slog.Error("failed to record rendering", "error", err, "image_path", rel)
		return nil, fmt.Errorf("failed to record rendering: %w", err)
	}

	rendering.ImageURL = s.imageService.URL(rel)

	slog.Info("rendering created",
		"rendering_id", rendering.ID,
		"subcategory", subcategory,
		"guest", req.IsGuest(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rendering, nil
}
