package domain

// Change event types published after a successful mutation.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// TodoEvent tells live clients that the list changed.
type TodoEvent struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Todo *Todo  `json:"todo,omitempty"`
}
