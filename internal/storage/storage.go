package storage

import (
	"context"
	"io"
)

// Uploader archives original uploads and per-turn answer audio. A nil
// Uploader means archival is disabled; records then keep empty paths.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}
