package service

import (
	"context"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/storage"
)

// Notifier receives change events after successful mutations.
type Notifier interface {
	Publish(ev domain.TodoEvent)
}

// TodoService fronts the storage facade for the HTTP layer: it logs every
// failure with full detail, records metrics and publishes change events.
// Results from the facade are returned unchanged.
type TodoService struct {
	store    *storage.Facade
	notifier Notifier
}

// NewTodoService creates a service. notifier may be nil.
func NewTodoService(store *storage.Facade, notifier Notifier) *TodoService {
	return &TodoService{store: store, notifier: notifier}
}

func (s *TodoService) IsLocalMode() bool { return s.store.IsLocalMode() }

func (s *TodoService) Mode() storage.Mode { return s.store.Mode() }

func (s *TodoService) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	start := time.Now()
	todos, err := s.store.List(ctx)
	s.observe(ctx, "list", 0, start, err)
	return todos, err
}

func (s *TodoService) Create(ctx context.Context, title string) (*domain.Todo, error) {
	start := time.Now()
	todo, err := s.store.Create(ctx, title)
	s.observe(ctx, "create", 0, start, err)
	if err == nil {
		s.publish(domain.TodoEvent{Type: domain.EventCreated, ID: todo.ID, Todo: todo})
	}
	return todo, err
}

func (s *TodoService) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	start := time.Now()
	todo, err := s.store.Update(ctx, id, patch)
	s.observe(ctx, "update", id, start, err)
	if err == nil {
		s.publish(domain.TodoEvent{Type: domain.EventUpdated, ID: todo.ID, Todo: todo})
	}
	return todo, err
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.store.Delete(ctx, id)
	s.observe(ctx, "delete", id, start, err)
	if err == nil {
		s.publish(domain.TodoEvent{Type: domain.EventDeleted, ID: id})
	}
	return err
}

func (s *TodoService) publish(ev domain.TodoEvent) {
	if s.notifier != nil {
		s.notifier.Publish(ev)
	}
}

func (s *TodoService) observe(ctx context.Context, op string, id int64, start time.Time, err error) {
	TodoOpDuration.WithLabelValues(op, string(s.store.Mode())).Observe(time.Since(start).Seconds())
	TodoOps.WithLabelValues(op, resultLabel(err)).Inc()

	if err == nil {
		return
	}
	log := logger.WithContext(ctx).With("op", op, "mode", s.store.Mode(), "error", err)
	if id != 0 {
		log = log.With("id", id)
	}
	switch {
	case domain.IsValidation(err), domain.IsNotFound(err):
		log.Warn("todo operation rejected")
	default:
		log.Error("todo operation failed")
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsValidation(err):
		return "invalid"
	case domain.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
