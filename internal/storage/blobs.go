package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrBlobConflict is returned when a blob update keeps losing a race.
var ErrBlobConflict = errors.New("blob update conflict")

// UpdateFunc receives the current value (ok is false when the key is
// absent) and returns the replacement. Returning an error aborts the update
// and nothing is written.
type UpdateFunc func(old []byte, ok bool) ([]byte, error)

// BlobStore is a byte-level key-value store. Update is the transactional
// step: it holds exclusive access to the key for the whole read-modify-write
// and replaces the value atomically.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// MemoryBlobs keeps blobs in process memory. Nothing survives a restart.
type MemoryBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryBlobs) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.data[key]
	next, err := fn(append([]byte(nil), old...), ok)
	if err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), next...)
	return nil
}
