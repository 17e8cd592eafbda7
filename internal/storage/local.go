package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"todo_webapp/internal/domain"
)

// LocalKey is the fixed key the whole collection is stored under.
const LocalKey = "todos-demo"

// Local keeps the entire collection as one JSON array in a BlobStore. Every
// operation reads the full blob and every mutation rewrites it inside a
// single BlobStore.Update, so O(n) per call is expected.
type Local struct {
	blobs  BlobStore
	key    string
	now    func() time.Time
	jitter func() int64
}

func NewLocal(blobs BlobStore) *Local {
	return &Local{
		blobs:  blobs,
		key:    LocalKey,
		now:    time.Now,
		jitter: func() int64 { return rand.Int64N(1000) },
	}
}

func (l *Local) List(ctx context.Context) ([]domain.Todo, error) {
	b, ok, err := l.blobs.Get(ctx, l.key)
	if err != nil {
		return nil, domain.BackendError("read local todos", err)
	}
	todos, err := decodeTodos(b, ok)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(todos)
	return todos, nil
}

func (l *Local) Create(ctx context.Context, title string) (*domain.Todo, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	var created domain.Todo
	err := l.blobs.Update(ctx, l.key, func(old []byte, ok bool) ([]byte, error) {
		todos, err := decodeTodos(old, ok)
		if err != nil {
			return nil, err
		}
		created = domain.Todo{
			ID:        l.nextID(todos),
			Title:     title,
			Done:      false,
			CreatedAt: l.now().UTC(),
		}
		return encodeTodos(append([]domain.Todo{created}, todos...))
	})
	if err != nil {
		return nil, localErr("create local todo", err)
	}
	return &created, nil
}

func (l *Local) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated domain.Todo
	err := l.blobs.Update(ctx, l.key, func(old []byte, ok bool) ([]byte, error) {
		todos, err := decodeTodos(old, ok)
		if err != nil {
			return nil, err
		}
		i := slices.IndexFunc(todos, func(t domain.Todo) bool { return t.ID == id })
		if i < 0 {
			return nil, &domain.NotFoundError{ID: id}
		}
		patch.Apply(&todos[i])
		updated = todos[i]
		return encodeTodos(todos)
	})
	if err != nil {
		return nil, localErr("update local todo", err)
	}
	return &updated, nil
}

func (l *Local) Delete(ctx context.Context, id int64) error {
	err := l.blobs.Update(ctx, l.key, func(old []byte, ok bool) ([]byte, error) {
		todos, err := decodeTodos(old, ok)
		if err != nil {
			return nil, err
		}
		i := slices.IndexFunc(todos, func(t domain.Todo) bool { return t.ID == id })
		if i < 0 {
			return nil, &domain.NotFoundError{ID: id}
		}
		return encodeTodos(slices.Delete(todos, i, i+1))
	})
	return localErr("delete local todo", err)
}

// Ping reads the blob, which is enough to prove the backend is usable.
func (l *Local) Ping(ctx context.Context) error {
	if p, ok := l.blobs.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return domain.BackendError("ping local storage", err)
		}
		return nil
	}
	if _, _, err := l.blobs.Get(ctx, l.key); err != nil {
		return domain.BackendError("ping local storage", err)
	}
	return nil
}

func (l *Local) Close() error {
	if c, ok := l.blobs.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// nextID derives an id from the clock plus jitter, as the browser demo did,
// then bumps it past the current maximum so it is unique in the collection.
// Not cryptographic; only ever called inside the exclusive update.
func (l *Local) nextID(todos []domain.Todo) int64 {
	id := l.now().UnixMilli() + l.jitter()
	var highest int64
	for _, t := range todos {
		highest = max(highest, t.ID)
	}
	if id <= highest {
		id = highest + 1
	}
	return id
}

func localErr(op string, err error) error {
	if err == nil || domain.IsNotFound(err) || domain.IsValidation(err) {
		return err
	}
	return domain.BackendError(op, err)
}

func decodeTodos(b []byte, ok bool) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	if !ok || len(b) == 0 {
		return todos, nil
	}
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, domain.BackendError("decode local todos", err)
	}
	if todos == nil {
		todos = make([]domain.Todo, 0)
	}
	return todos, nil
}

func encodeTodos(todos []domain.Todo) ([]byte, error) {
	b, err := json.Marshal(todos)
	if err != nil {
		return nil, domain.BackendError("encode local todos", err)
	}
	return b, nil
}

func sortNewestFirst(todos []domain.Todo) {
	slices.SortStableFunc(todos, func(a, b domain.Todo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
