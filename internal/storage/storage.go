package storage

import (
	"context"
	"io"
)

// Uploader stores audio artifacts (question audio, TTS output, recorded
// answers) referenced by name from session transcripts.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
