package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/templui/homerender/internal/db"
	"github.com/templui/homerender/internal/repository"
	"github.com/templui/homerender/internal/storage"
)

type generateCall struct {
	prompt    string
	reference []byte
}

// fakeGenerator succeeds unless errs holds an error at the call's index.
type fakeGenerator struct {
	errs  []error
	calls []generateCall
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, reference []byte) ([]byte, error) {
	i := len(f.calls)
	f.calls = append(f.calls, generateCall{prompt: prompt, reference: reference})
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return []byte(fmt.Sprintf("\x89PNG image %d", i)), nil
}

type testEnv struct {
	users      repository.UserRepository
	renderings repository.RenderingRepository
	images     *ImageService
	generator  *fakeGenerator
	rendering  *RenderingService
	gallery    *GalleryService
	auth       *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	database, err := db.Open("sqlite", filepath.Join(dir, "test.db")+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store, err := storage.NewLocalStorage(filepath.Join(dir, "static"), "/static")
	require.NoError(t, err)

	env := &testEnv{
		users:      repository.NewUserRepository(database),
		renderings: repository.NewRenderingRepository(database),
		images:     NewImageService(store),
		generator:  &fakeGenerator{},
	}
	env.rendering = NewRenderingService(env.renderings, env.images, env.generator)
	env.gallery = NewGalleryService(env.renderings, env.images)
	env.auth = NewAuthService(env.users, "test-secret", false, time.Hour)
	return env
}

func (e *testEnv) count(t *testing.T) int {
	t.Helper()
	n, err := e.renderings.Count()
	require.NoError(t, err)
	return n
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	u, err := e.auth.Register(email, "Tester", "blue-house-77")
	require.NoError(t, err)
	return u.ID
}
