package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/repository"
)

// MinSlideshowItems is how many renderings a slideshow needs.
const MinSlideshowItems = 2

const (
	ActionLike     = "like"
	ActionFavorite = "favorite"
)

var ErrUnknownAction = errors.New("unknown action")

// Gallery is a rendering collection split into the renderings created in
// the last interaction (New) and everything else (Main), newest first.
type Gallery struct {
	New               []*model.Rendering
	Main              []*model.Rendering
	SlideshowEligible bool
}

type GalleryService struct {
	renderingRepository repository.RenderingRepository
	imageService        *ImageService
}

func NewGalleryService(renderingRepository repository.RenderingRepository, imageService *ImageService) *GalleryService {
	return &GalleryService{
		renderingRepository: renderingRepository,
		imageService:        imageService,
	}
}

// ForUser lists the user's renderings. Slideshow needs two favorites
// outside the new section.
func (s *GalleryService) ForUser(userID string, newIDs []string) (*Gallery, error) {
	renderings, err := s.renderingRepository.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list renderings: %w", err)
	}

	g := s.split(renderings, newIDs)
	g.SlideshowEligible = countFavorited(g.Main) >= MinSlideshowItems
	return g, nil
}

// ForGuest lists the guest-owned renderings among guestIDs. Slideshow needs
// two of them.
func (s *GalleryService) ForGuest(guestIDs, newIDs []string) (*Gallery, error) {
	renderings, err := s.renderingRepository.ByIDs(guestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest renderings: %w", err)
	}

	g := s.split(renderings, newIDs)
	g.SlideshowEligible = len(renderings) >= MinSlideshowItems
	return g, nil
}

// Slideshow returns the user's favorites, or nil when there are fewer than
// MinSlideshowItems.
func (s *GalleryService) Slideshow(userID string) ([]*model.Rendering, error) {
	renderings, err := s.renderingRepository.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list renderings: %w", err)
	}

	var favorites []*model.Rendering
	for _, r := range renderings {
		if r.Favorited {
			favorites = append(favorites, r)
		}
	}
	if len(favorites) < MinSlideshowItems {
		return nil, nil
	}

	s.withURLs(favorites)
	return favorites, nil
}

// GuestSlideshow returns all guest renderings, or nil when there are fewer
// than MinSlideshowItems.
func (s *GalleryService) GuestSlideshow(guestIDs []string) ([]*model.Rendering, error) {
	renderings, err := s.renderingRepository.ByIDs(guestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest renderings: %w", err)
	}
	if len(renderings) < MinSlideshowItems {
		return nil, nil
	}

	s.withURLs(renderings)
	return renderings, nil
}

// BulkToggle flips liked or favorited on the user's renderings among ids
// and returns how many changed.
func (s *GalleryService) BulkToggle(userID, action string, ids []string) (int64, error) {
	var flag string
	switch action {
	case ActionLike:
		flag = repository.FlagLiked
	case ActionFavorite:
		flag = repository.FlagFavorited
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	n, err := s.renderingRepository.ToggleFlag(userID, flag, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to update renderings: %w", err)
	}
	return n, nil
}

func (s *GalleryService) split(renderings []*model.Rendering, newIDs []string) *Gallery {
	s.withURLs(renderings)

	g := &Gallery{}
	for _, r := range renderings {
		if slices.Contains(newIDs, r.ID) {
			g.New = append(g.New, r)
		} else {
			g.Main = append(g.Main, r)
		}
	}
	return g
}

func (s *GalleryService) withURLs(renderings []*model.Rendering) {
	for _, r := range renderings {
		r.ImageURL = s.imageService.URL(r.ImagePath)
	}
}

func countFavorited(renderings []*model.Rendering) int {
	n := 0
	for _, r := range renderings {
		if r.Favorited {
			n++
		}
	}
	return n
}
