package storage

import (
	"context"
	"io"

	"todo_webapp/internal/domain"
)

// Facade forwards every operation to the one Store chosen at construction.
// It adds no retry, caching or validation of its own.
type Facade struct {
	store Store
	mode  Mode
}

func New(store Store, mode Mode) *Facade {
	return &Facade{store: store, mode: mode}
}

// IsLocalMode is advisory only; it drives UI copy, never behavior.
func (f *Facade) IsLocalMode() bool { return f.mode == ModeLocal }

func (f *Facade) Mode() Mode { return f.mode }

func (f *Facade) List(ctx context.Context) ([]domain.Todo, error) {
	return f.store.List(ctx)
}

func (f *Facade) Create(ctx context.Context, title string) (*domain.Todo, error) {
	return f.store.Create(ctx, title)
}

func (f *Facade) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	return f.store.Update(ctx, id, patch)
}

func (f *Facade) Delete(ctx context.Context, id int64) error {
	return f.store.Delete(ctx, id)
}

// Ping reports backend reachability when the store supports it.
func (f *Facade) Ping(ctx context.Context) error {
	if p, ok := f.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases whatever the store holds open (pool, redis client).
func (f *Facade) Close() error {
	if c, ok := f.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
