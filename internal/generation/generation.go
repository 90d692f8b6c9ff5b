// Package generation talks to the hosted image model.
package generation

import (
	"context"
	"errors"
)

var (
	// ErrConfiguration means the provider settings needed to call the model are missing.
	ErrConfiguration = errors.New("image generation is not configured")
	// ErrGeneration means the model call failed or came back without an image.
	ErrGeneration = errors.New("image generation failed")
)

const (
	ProviderVertex = "vertex"
	ProviderGemini = "gemini"
)

// Generator turns a prompt, and optionally a reference image the result
// should stay consistent with, into exactly one encoded image.
type Generator interface {
	Generate(ctx context.Context, prompt string, reference []byte) ([]byte, error)
}
