package domain

import (
	"strings"
	"time"
)

// Todo is a single item on the list.
type Todo struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Done      bool      `db:"done" json:"done"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TodoPatch holds the fields an update may change. Nil means unchanged.
type TodoPatch struct {
	Title *string `json:"title,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Done == nil
}

// Validate checks the patch before it reaches any store.
func (p TodoPatch) Validate() error {
	if p.Empty() {
		return &ValidationError{Reason: "Nothing to update"}
	}
	if p.Title != nil {
		return ValidateTitle(*p.Title)
	}
	return nil
}

// Apply merges the patch into t. ID and CreatedAt are never touched.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
}

// ValidateTitle rejects empty and whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "Title is required"}
	}
	return nil
}
