package generation

import (
	"fmt"
	"log/slog"

	"github.com/templui/homerender/internal/config"
)

// New creates the generator for the configured provider. Missing credentials
// do not fail here: the app still serves galleries, and every generation
// attempt reports ErrConfiguration instead.
func New(cfg *config.Config) (*GenaiGenerator, error) {
	provider := cfg.GenerationProvider

	slog.Info("initializing image generator", "provider", provider)

	switch provider {
	case ProviderVertex, ProviderGemini:
		g := NewGenaiGenerator(Settings{
			Provider:       provider,
			Project:        cfg.GCPProjectID,
			Location:       cfg.GCPLocation,
			APIKey:         cfg.GeminiAPIKey,
			ImageModel:     cfg.ImageModel,
			ReferenceModel: cfg.ReferenceModel,
			Timeout:        cfg.GenerationTimeout,
		})
		if missing := g.Missing(); len(missing) > 0 {
			slog.Warn("image generation disabled until configured", "provider", provider, "missing", missing)
		}
		return g, nil

	default:
		return nil, fmt.Errorf("unknown generation provider: %s (supported: vertex, gemini)", provider)
	}
}
