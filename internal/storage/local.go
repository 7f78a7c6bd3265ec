package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes artifacts under a root directory; object names are
// slash-separated paths relative to the root (typically the sessions dir, so
// audio sits next to the session's JSON snapshot).
type LocalUploader struct {
	root string
}

func NewLocalUploader(root string) *LocalUploader {
	return &LocalUploader{root: root}
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	path := filepath.Join(u.root, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return path, nil
}
