package storage

import (
	"context"
	"errors"
)

// SnapshotStore keeps opaque serialized snapshots under fixed keys.
// Implementations must return ErrNotFound when no snapshot exists for the key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

var ErrNotFound = errors.New("snapshot not found")
