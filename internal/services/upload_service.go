package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadService stores admin-uploaded images under a configured root
// directory and hands back the relative URL they will be served from.
type UploadService struct {
	root string
}

// NewUploadService creates a new UploadService rooted at dir.
func NewUploadService(dir string) *UploadService {
	return &UploadService{root: dir}
}

// SaveImage writes the uploaded content to disk under a random filename
// that keeps the original extension (lowercased, "bin" if none) and
// returns the URL path the file is served from. Empty uploads are
// rejected. No content-type or size validation is performed.
func (s *UploadService) SaveImage(originalName string, size int64, content io.Reader) (string, error) {
	if size <= 0 {
		return "", ErrEmptyFile
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "bin"
	}
	filename := uuid.New().String() + "." + ext

	target, err := os.Create(filepath.Join(s.root, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer target.Close()

	if _, err := io.Copy(target, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + filename, nil
}
