package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FSStore reads blobs from files under a root directory; the key is the relative path.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blob root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat blob root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("blob root %s is not a directory", abs)
	}
	return &FSStore{root: abs}, nil
}

// Fetch implements repository.BlobStore.
func (s *FSStore) Fetch(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.resolve(key)
	if err != nil {
		return "", false, err
	}

	// #nosec G304 -- path is confined to s.root by resolve
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read blob %s: %w", key, err)
	}
	if !utf8.Valid(data) {
		return "", false, fmt.Errorf("blob %s is not valid UTF-8", key)
	}
	return string(data), true, nil
}

// Ping checks that the root directory is still readable.
func (s *FSStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("stat blob root: %w", err)
	}
	return nil
}

func (s *FSStore) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", ErrInvalidKey
	}
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return path, nil
}
