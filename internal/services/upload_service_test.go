package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_SaveImage(t *testing.T) {
	dir := t.TempDir()
	service := services.NewUploadService(dir)

	content := "fake image bytes"
	url, err := service.SaveImage("photo.PNG", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), "url %q must be under /uploads/", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension must be kept lowercased, got %q", url)
	assert.NotContains(t, url, "photo", "filename must be randomized")

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))
}

func TestUploadService_SaveImage_EmptyFile(t *testing.T) {
	service := services.NewUploadService(t.TempDir())

	_, err := service.SaveImage("photo.png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, services.ErrEmptyFile)
}

func TestUploadService_SaveImage_DefaultExtension(t *testing.T) {
	service := services.NewUploadService(t.TempDir())

	url, err := service.SaveImage("noextension", 4, strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".bin"), "missing extension defaults to .bin, got %q", url)
}

func TestUploadService_SaveImage_CreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	service := services.NewUploadService(dir)

	_, err := service.SaveImage("a.jpg", 1, strings.NewReader("x"))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
