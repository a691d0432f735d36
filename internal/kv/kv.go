// Package kv is the device-local durable key-value store the session engine
// persists snapshots into. Values are opaque JSON blobs.
package kv

import (
	"context"
	"fmt"
)

// Store reads and writes whole values by key. Read returns (nil, nil) when the
// key is absent. Writing a nil value removes the key.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the backend named by kind rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLiteStore(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", kind)
	}
}
