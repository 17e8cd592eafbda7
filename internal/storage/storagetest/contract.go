// Package storagetest checks a storage.Store against the behaviour every
// backend must share.
package storagetest

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/storage"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Store

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// RunContract runs the shared store properties against stores built by newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("CreateReturnsFreshTodo", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		before := time.Now().Add(-time.Second)

		todo, err := s.Create(ctx, "Buy milk")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if todo.Title != "Buy milk" || todo.Done {
			t.Fatalf("unexpected todo: %+v", todo)
		}
		if todo.ID == 0 {
			t.Fatalf("expected assigned id")
		}
		if todo.CreatedAt.Before(before) {
			t.Fatalf("createdAt %v earlier than call time %v", todo.CreatedAt, before)
		}

		other, err := s.Create(ctx, "Walk dog")
		if err != nil {
			t.Fatalf("create second: %v", err)
		}
		if other.ID == todo.ID {
			t.Fatalf("ids not unique: %d", other.ID)
		}
	})

	t.Run("CreateRejectsEmptyTitle", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"", "   "} {
			if _, err := s.Create(ctx, title); !domain.IsValidation(err) {
				t.Fatalf("create(%q) = %v; want validation error", title, err)
			}
		}
		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(todos) != 0 {
			t.Fatalf("rejected create persisted %d todos", len(todos))
		}
	})

	t.Run("CreateThenListRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Round trip")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		matches := 0
		for _, td := range todos {
			if td.ID == created.ID {
				matches++
				if td.Title != created.Title || td.Done != created.Done || !td.CreatedAt.Equal(created.CreatedAt) {
					t.Fatalf("listed %+v differs from created %+v", td, *created)
				}
			}
		}
		if matches != 1 {
			t.Fatalf("expected exactly one match, got %d", matches)
		}
	})

	t.Run("UpdateDoneKeepsOtherFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Toggle me")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		updated, err := s.Update(ctx, created.ID, domain.TodoPatch{Done: boolPtr(true)})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !updated.Done || updated.Title != created.Title || updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("unexpected update result: %+v (was %+v)", updated, *created)
		}

		renamed, err := s.Update(ctx, created.ID, domain.TodoPatch{Title: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("rename: %v", err)
		}
		if renamed.Title != "Renamed" || !renamed.Done {
			t.Fatalf("rename should keep done: %+v", renamed)
		}
	})

	t.Run("UpdateErrors", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Exists")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := s.Update(ctx, created.ID, domain.TodoPatch{}); !domain.IsValidation(err) {
			t.Fatalf("empty patch: got %v; want validation error", err)
		}
		if _, err := s.Update(ctx, created.ID, domain.TodoPatch{Title: strPtr("")}); !domain.IsValidation(err) {
			t.Fatalf("empty title patch: got %v; want validation error", err)
		}
		if _, err := s.Update(ctx, created.ID+1_000_000, domain.TodoPatch{Done: boolPtr(true)}); !domain.IsNotFound(err) {
			t.Fatalf("missing id: got %v; want not found", err)
		}
		if _, err := s.Update(ctx, 0, domain.TodoPatch{Done: boolPtr(true)}); !domain.IsNotFound(err) {
			t.Fatalf("id 0: got %v; want not found", err)
		}
	})

	t.Run("DeleteZeroIDNotFound", func(t *testing.T) {
		s := newStore(t)
		if err := s.Delete(context.Background(), 0); !domain.IsNotFound(err) {
			t.Fatalf("delete id 0: got %v; want not found", err)
		}
	})

	t.Run("ConcurrentWritesKeepEveryChange", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const writers = 10

		ids := make([]int64, writers)
		errs := make(chan error, writers)
		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				td, err := s.Create(ctx, "concurrent "+strconv.Itoa(i))
				if err != nil {
					errs <- err
					return
				}
				ids[i] = td.ID
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent create: %v", err)
		}

		errs = make(chan error, writers)
		for _, id := range ids {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				if _, err := s.Update(ctx, id, domain.TodoPatch{Done: boolPtr(true)}); err != nil {
					errs <- err
				}
			}(id)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent update: %v", err)
		}

		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(todos) != writers {
			t.Fatalf("listed %d todos; want %d", len(todos), writers)
		}
		seen := make(map[int64]bool, writers)
		for _, td := range todos {
			if seen[td.ID] {
				t.Fatalf("duplicate id %d", td.ID)
			}
			seen[td.ID] = true
			if !td.Done {
				t.Fatalf("todo %d lost its done update", td.ID)
			}
		}
		for _, id := range ids {
			if !seen[id] {
				t.Fatalf("created todo %d missing from list", id)
			}
		}
	})

	t.Run("DeleteRemovesAndSecondDeleteFails", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Delete me")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := s.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, td := range todos {
			if td.ID == created.ID {
				t.Fatalf("deleted todo still listed")
			}
		}
		if err := s.Delete(ctx, created.ID); !domain.IsNotFound(err) {
			t.Fatalf("second delete: got %v; want not found", err)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"first", "second", "third"} {
			if _, err := s.Create(ctx, title); err != nil {
				t.Fatalf("create %s: %v", title, err)
			}
		}
		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(todos) != 3 {
			t.Fatalf("expected 3 todos, got %d", len(todos))
		}
		for i := 1; i < len(todos); i++ {
			if todos[i-1].CreatedAt.Before(todos[i].CreatedAt) {
				t.Fatalf("not ordered newest first: %v before %v", todos[i-1].CreatedAt, todos[i].CreatedAt)
			}
		}
		if todos[0].Title != "third" || todos[2].Title != "first" {
			t.Fatalf("unexpected order: %s, %s, %s", todos[0].Title, todos[1].Title, todos[2].Title)
		}
	})

	t.Run("Scenario", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Buy milk")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		requireListed(t, s, created.ID, "Buy milk", false)

		if _, err := s.Update(ctx, created.ID, domain.TodoPatch{Done: boolPtr(true)}); err != nil {
			t.Fatalf("update: %v", err)
		}
		requireListed(t, s, created.ID, "Buy milk", true)

		if err := s.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		todos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, td := range todos {
			if td.ID == created.ID {
				t.Fatalf("todo %d still listed after delete", created.ID)
			}
		}
	})
}

func requireListed(t *testing.T, s storage.Store, id int64, title string, done bool) {
	t.Helper()
	todos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, td := range todos {
		if td.ID == id {
			if td.Title != title || td.Done != done {
				t.Fatalf("todo %d = %+v; want title=%q done=%v", id, td, title, done)
			}
			return
		}
	}
	t.Fatalf("todo %d not listed", id)
}
