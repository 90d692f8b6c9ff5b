package generation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// Settings configures GenaiGenerator.
type Settings struct {
	Provider       string // ProviderVertex or ProviderGemini
	Project        string
	Location       string
	APIKey         string
	ImageModel     string // used for prompt-only requests
	ReferenceModel string // used when a reference image is attached
	Timeout        time.Duration
}

// GenaiGenerator calls Imagen for prompt-only requests and a Gemini image
// model when the result has to follow a reference image.
type GenaiGenerator struct {
	settings Settings
}

func NewGenaiGenerator(s Settings) *GenaiGenerator {
	return &GenaiGenerator{settings: s}
}

// Missing lists the env keys the selected provider needs but that are empty.
func (g *GenaiGenerator) Missing() []string {
	var missing []string
	switch g.settings.Provider {
	case ProviderGemini:
		if g.settings.APIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if g.settings.Project == "" {
			missing = append(missing, "GCP_PROJECT_ID")
		}
		if g.settings.Location == "" {
			missing = append(missing, "GCP_LOCATION")
		}
	}
	return missing
}

func (g *GenaiGenerator) Generate(ctx context.Context, prompt string, reference []byte) ([]byte, error) {
	if missing := g.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrConfiguration, missing)
	}

	if g.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.settings.Timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, g.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %w", ErrGeneration, err)
	}

	start := time.Now()
	var data []byte
	if len(reference) > 0 {
		data, err = g.withReference(ctx, client, prompt, reference)
	} else {
		data, err = g.promptOnly(ctx, client, prompt)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("image generated", "prompt", prompt, "bytes", len(data), "reference", len(reference) > 0, "duration", time.Since(start))
	return data, nil
}

func (g *GenaiGenerator) clientConfig() *genai.ClientConfig {
	if g.settings.Provider == ProviderGemini {
		return &genai.ClientConfig{
			APIKey:  g.settings.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	}
	return &genai.ClientConfig{
		Project:  g.settings.Project,
		Location: g.settings.Location,
		Backend:  genai.BackendVertexAI,
	}
}

func (g *GenaiGenerator) promptOnly(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	resp, err := client.Models.GenerateImages(ctx, g.settings.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	for _, img := range resp.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		return img.Image.ImageBytes, nil
	}
	return nil, fmt.Errorf("%w: model returned no images", ErrGeneration)
}

func (g *GenaiGenerator) withReference(ctx context.Context, client *genai.Client, prompt string, reference []byte) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(reference, http.DetectContentType(reference)),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.settings.ReferenceModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: model returned no candidates", ErrGeneration)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return part.InlineData.Data, nil
	}
	return nil, fmt.Errorf("%w: model returned no image data", ErrGeneration)
}
