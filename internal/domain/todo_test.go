package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		title string
		ok    bool
	}{
		{"Buy milk", true},
		{"  padded  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tc := range cases {
		err := ValidateTitle(tc.title)
		if tc.ok && err != nil {
			t.Fatalf("ValidateTitle(%q) = %v; want nil", tc.title, err)
		}
		if !tc.ok && !IsValidation(err) {
			t.Fatalf("ValidateTitle(%q) = %v; want validation error", tc.title, err)
		}
	}
}

func TestTodoPatchValidate(t *testing.T) {
	if err := (TodoPatch{}).Validate(); !IsValidation(err) {
		t.Fatalf("empty patch: got %v; want validation error", err)
	}
	if err := (TodoPatch{Title: strPtr("")}).Validate(); !IsValidation(err) {
		t.Fatalf("empty title: got %v; want validation error", err)
	}
	if err := (TodoPatch{Done: boolPtr(false)}).Validate(); err != nil {
		t.Fatalf("done only: got %v; want nil", err)
	}
}

func TestTodoPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	todo := Todo{ID: 7, Title: "old", Done: false, CreatedAt: created}

	TodoPatch{Done: boolPtr(true)}.Apply(&todo)
	if todo.Title != "old" || !todo.Done || todo.ID != 7 || !todo.CreatedAt.Equal(created) {
		t.Fatalf("unexpected todo after done patch: %+v", todo)
	}

	TodoPatch{Title: strPtr("new")}.Apply(&todo)
	if todo.Title != "new" || !todo.Done {
		t.Fatalf("unexpected todo after title patch: %+v", todo)
	}
}

func TestErrorKinds(t *testing.T) {
	nf := &NotFoundError{ID: 3}
	if !IsNotFound(nf) || IsValidation(nf) {
		t.Fatalf("NotFoundError misclassified")
	}

	cause := context.DeadlineExceeded
	be := BackendError("list todos", cause)
	if !errors.Is(be, ErrBackend) || !errors.Is(be, cause) {
		t.Fatalf("backend error should match both ErrBackend and its cause: %v", be)
	}
	if again := BackendError("outer", be); again != be {
		t.Fatalf("BackendError should not double-wrap")
	}
	if BackendError("noop", nil) != nil {
		t.Fatalf("BackendError(nil) should be nil")
	}
}
