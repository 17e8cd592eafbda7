package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"todo_webapp/internal/domain"
)

// Remote talks to the todo HTTP API. Each operation is one round trip.
type Remote struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemote creates a client for the API at baseURL. A nil httpClient gets
// a default with a 10s timeout.
func NewRemote(baseURL string, httpClient *http.Client) *Remote {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Remote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (r *Remote) List(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := r.do(ctx, "list todos", http.MethodGet, "/api/todos", 0, nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = make([]domain.Todo, 0)
	}
	return todos, nil
}

func (r *Remote) Create(ctx context.Context, title string) (*domain.Todo, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	var t domain.Todo
	body := map[string]string{"title": title}
	if err := r.do(ctx, "create todo", http.MethodPost, "/api/todos", 0, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var t domain.Todo
	if err := r.do(ctx, "update todo", http.MethodPatch, todoPath(id), id, patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) Delete(ctx context.Context, id int64) error {
	var ack struct {
		Success bool `json:"success"`
	}
	if err := r.do(ctx, "delete todo", http.MethodDelete, todoPath(id), id, nil, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return domain.BackendError("delete todo", fmt.Errorf("server did not acknowledge delete of %d", id))
	}
	return nil
}

// Ping hits the liveness endpoint of the API server.
func (r *Remote) Ping(ctx context.Context) error {
	return r.do(ctx, "ping api", http.MethodGet, "/healthz", 0, nil, nil)
}

func todoPath(id int64) string {
	return "/api/todos/" + strconv.FormatInt(id, 10)
}

func (r *Remote) do(ctx context.Context, op, method, path string, id int64, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.BackendError(op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return domain.BackendError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.BackendError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := strings.TrimSpace(string(raw))
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}

		switch resp.StatusCode {
		case http.StatusBadRequest:
			return &domain.ValidationError{Reason: msg}
		case http.StatusNotFound:
			// a 404 on an item route means the id is unknown
			if method == http.MethodPatch || method == http.MethodDelete {
				return &domain.NotFoundError{ID: id}
			}
		}
		return domain.BackendError(op, fmt.Errorf("API error: %s - %s", resp.Status, msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.BackendError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
