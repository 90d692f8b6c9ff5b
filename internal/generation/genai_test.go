package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/homerender/internal/config"
)

func TestMissingSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     []string
	}{
		{"vertex without project", Settings{Provider: ProviderVertex, Location: "us-central1"}, []string{"GCP_PROJECT_ID"}},
		{"vertex complete", Settings{Provider: ProviderVertex, Project: "p", Location: "us-central1"}, nil},
		{"gemini without key", Settings{Provider: ProviderGemini, Project: "p"}, []string{"GEMINI_API_KEY"}},
		{"gemini complete", Settings{Provider: ProviderGemini, APIKey: "k"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewGenaiGenerator(tt.settings).Missing())
		})
	}
}

func TestGenerateWithoutConfiguration(t *testing.T) {
	g := NewGenaiGenerator(Settings{Provider: ProviderVertex, Location: "us-central1"})

	data, err := g.Generate(context.Background(), "a house", nil)

	assert.Nil(t, data)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "GCP_PROJECT_ID")
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(&config.Config{GenerationProvider: "dalle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dalle")
}

func TestNewKeepsServingWhenUnconfigured(t *testing.T) {
	g, err := New(&config.Config{GenerationProvider: ProviderVertex, GCPLocation: "us-central1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GCP_PROJECT_ID"}, g.Missing())
}
