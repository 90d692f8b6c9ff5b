package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/templui/homerender/internal/generation"
	"github.com/templui/homerender/internal/repository"
	"github.com/templui/homerender/internal/service"
)

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                      "/gallery",
		"/slideshow":            "/slideshow",
		"//evil.example":        "/gallery",
		"/\\evil.example":       "/gallery",
		"https://evil.example/": "/gallery",
		"gallery":               "/gallery",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestRenderingStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrRenderingNotFound, http.StatusNotFound},
		{service.ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("%w: %q", service.ErrUnknownSubcategory, "Garage"), http.StatusBadRequest},
		{fmt.Errorf("%w: no key", generation.ErrConfiguration), http.StatusServiceUnavailable},
		{fmt.Errorf("front exterior: %w", generation.ErrGeneration), http.StatusBadGateway},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, message := renderingStatus(tt.err)
		assert.Equal(t, tt.want, status, tt.err.Error())
		assert.NotEmpty(t, message)
	}
}
