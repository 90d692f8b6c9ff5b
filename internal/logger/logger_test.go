package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "", "production")

	log.Debug("hidden")
	log.Info("rendering created", "prompt", strings.Repeat("p", 500))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rendering created", line["msg"])
	assert.Equal(t, "homerender", line["service"])
	assert.Len(t, line["prompt"], maxPromptLog+3)
}

func TestNewDevelopmentLogsDebugText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true, "", "development").Debug("image generated", "bytes", 42)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "bytes=42")
}
