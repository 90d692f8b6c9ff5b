package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStoreRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	data := []byte("\x89PNG\r\n\x1a\nrest-of-image")

	rel, err := env.images.Store(ctx, data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "renderings/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(rel, "renderings/"), ".png"), 32)

	got, err := env.images.Load(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	other, err := env.images.Store(ctx, data)
	require.NoError(t, err)
	assert.NotEqual(t, rel, other)

	assert.Equal(t, "/static/"+rel, env.images.URL(rel))
}

func TestStorePlanUsesExtension(t *testing.T) {
	env := newTestEnv(t)

	rel, err := env.images.StorePlan(context.Background(), bytes.NewReader([]byte("%PDF-1.7")), ".pdf")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "plans/"))
	assert.True(t, strings.HasSuffix(rel, ".pdf"))
}
