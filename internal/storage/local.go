package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// LocalStore writes files into a flat directory. The reference is the bare
// filename; the web layer serves the directory under /uploads.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(ErrStoreFailed, err.Error())
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	if !extAllowed(originalName) {
		return "", ErrUnsupportedFormat
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(path.Ext(originalName)))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", errors.Wrap(ErrStoreFailed, err.Error())
	}
	return name, nil
}

func (s *LocalStore) Fetch(ctx context.Context, ref string) ([]byte, error) {
	// refs are bare filenames, never paths
	if ref != filepath.Base(ref) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(ErrStoreFailed, err.Error())
	}
	return data, nil
}
