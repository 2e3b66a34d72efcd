package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/talkincode/shopcore/config"
)

var (
	// ErrStoreFailed covers disk and network write failures.
	ErrStoreFailed = errors.New("storage write failed")
	// ErrUnsupportedFormat is returned for files outside the image allow-list.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNotFound is returned when a reference cannot be resolved.
	ErrNotFound = errors.New("stored file not found")
)

// FileStore persists a binary file and returns an opaque reference that can
// later be resolved back to the original bytes, regardless of which backend
// produced it.
type FileStore interface {
	// Store writes data and returns the reference (local filename or
	// fully qualified remote URL).
	Store(ctx context.Context, data []byte, originalName string) (string, error)

	// Fetch resolves a reference produced by Store back to its bytes.
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// allowed image extensions, lower case without dot
var allowedFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
}

func extAllowed(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	return allowedFormats[strings.ToLower(name[idx+1:])]
}

// New selects the backend once at process start from the deployment config.
// Anything other than "s3" falls back to the local directory store.
func New(cfg *config.AppConfig) (FileStore, error) {
	if strings.EqualFold(cfg.Storage.Provider, "s3") {
		return NewS3Store(&cfg.Storage)
	}
	return NewLocalStore(cfg.GetUploadDir())
}
