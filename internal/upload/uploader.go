package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores a binary payload under a folder label and returns a stable
// reference string that callers attach to entities.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// LocalUploader writes payloads to disk and returns URLs under baseURL.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (u *LocalUploader) Upload(_ context.Context, folder, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	dir := filepath.Join(u.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return u.baseURL + "/" + folder + "/" + name, nil
}

var _ Uploader = (*LocalUploader)(nil)
