// Package storage holds the todo Record Store contract, its local and remote
// implementations, and the Facade that callers use without knowing which
// backend was chosen at startup.
package storage

import (
	"context"
	"fmt"
	"strings"

	"todo_webapp/internal/domain"
)

// Store is the contract shared by every backend.
//
// Delete of a missing id fails with a NotFoundError in every backend.
type Store interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, title string) (*domain.Todo, error)
	Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Mode names the backend selected at startup.
type Mode string

const (
	ModeDatabase Mode = "database"
	ModeRemote   Mode = "remote"
	ModeLocal    Mode = "local"
)

// ParseMode maps a configuration value to a Mode. Empty means database.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "database", "db":
		return ModeDatabase, nil
	case "remote", "api":
		return ModeRemote, nil
	case "local", "demo":
		return ModeLocal, nil
	default:
		return "", fmt.Errorf("unknown storage mode %q", s)
	}
}
