package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// FileStore keeps one JSON file per key inside dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (f *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the file through a temp file and rename, so a crash leaves
// either the old or the new snapshot on disk.
func (f *FileStore) Write(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	if value == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", key, err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}
