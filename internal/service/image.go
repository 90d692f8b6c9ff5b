package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/homerender/internal/storage"
)

// ImageService stores generated renderings and uploaded plans.
type ImageService struct {
	storage storage.Storage
}

func NewImageService(storage storage.Storage) *ImageService {
	return &ImageService{storage: storage}
}

func uniqueName(ext string) string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "") + ext
}

// Store saves a PNG under a fresh random name and returns its relative path.
func (s *ImageService) Store(ctx context.Context, data []byte) (string, error) {
	rel := path.Join(storage.RenderingsDir, uniqueName(".png"))

	err := s.storage.Save(ctx, rel, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to save rendering: %w", err)
	}

	return rel, nil
}

// Load reads a stored rendering back.
func (s *ImageService) Load(ctx context.Context, rel string) ([]byte, error) {
	rc, err := s.storage.Open(ctx, rel)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendering: %w", err)
	}

	return data, nil
}

// StorePlan keeps an uploaded house plan verbatim under a fresh name with
// extension ext. The caller has already validated it.
func (s *ImageService) StorePlan(ctx context.Context, file io.Reader, ext string) (string, error) {
	rel := path.Join(storage.PlansDir, uniqueName(ext))

	err := s.storage.Save(ctx, rel, file)
	if err != nil {
		return "", fmt.Errorf("failed to save plan: %w", err)
	}

	return rel, nil
}

func (s *ImageService) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.storage.URL(rel)
}
