package service

import (
	"context"
	"errors"
	"testing"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/storage"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type recordingNotifier struct {
	events []domain.TodoEvent
}

func (r *recordingNotifier) Publish(ev domain.TodoEvent) {
	r.events = append(r.events, ev)
}

func newLocalService(t *testing.T) (*TodoService, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	facade := storage.New(storage.NewLocal(storage.NewMemoryBlobs()), storage.ModeLocal)
	return NewTodoService(facade, n), n
}

func TestServicePublishesOnSuccess(t *testing.T) {
	svc, n := newLocalService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	done := true
	if _, err := svc.Update(ctx, todo.ID, domain.TodoPatch{Done: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{domain.EventCreated, domain.EventUpdated, domain.EventDeleted}
	if len(n.events) != len(want) {
		t.Fatalf("events = %+v", n.events)
	}
	for i, ev := range n.events {
		if ev.Type != want[i] || ev.ID != todo.ID {
			t.Fatalf("event %d = %+v; want type %s id %d", i, ev, want[i], todo.ID)
		}
	}
	if n.events[2].Todo != nil {
		t.Fatalf("delete event should not carry a todo")
	}
}

func TestServiceNoEventOnFailure(t *testing.T) {
	svc, n := newLocalService(t)
	ctx := context.Background()

	before := testutil.ToFloat64(TodoOps.WithLabelValues("create", "invalid"))
	if _, err := svc.Create(ctx, ""); !domain.IsValidation(err) {
		t.Fatalf("got %v; want validation", err)
	}
	if got := testutil.ToFloat64(TodoOps.WithLabelValues("create", "invalid")); got != before+1 {
		t.Fatalf("invalid counter = %v; want %v", got, before+1)
	}

	if err := svc.Delete(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v; want not found", err)
	}
	if len(n.events) != 0 {
		t.Fatalf("failed operations must not publish: %+v", n.events)
	}
}

func TestServiceReportsMode(t *testing.T) {
	svc, _ := newLocalService(t)
	if !svc.IsLocalMode() || svc.Mode() != storage.ModeLocal {
		t.Fatalf("unexpected mode %s", svc.Mode())
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	nilNotifier := NewTodoService(storage.New(storage.NewLocal(storage.NewMemoryBlobs()), storage.ModeLocal), nil)
	if _, err := nilNotifier.Create(context.Background(), "ok"); err != nil {
		t.Fatalf("create without notifier: %v", err)
	}
}
