package repository

import (
	"context"
	"errors"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepository stores todos in the relational todos table.
type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, done, created_at
		 FROM todos
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, domain.BackendError("list todos", err)
	}
	defer rows.Close()

	res := make([]domain.Todo, 0)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt); err != nil {
			return nil, domain.BackendError("scan todo", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.BackendError("list todos", err)
	}
	return res, nil
}

func (r *TodoRepository) Create(ctx context.Context, title string) (*domain.Todo, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	var t domain.Todo
	err := r.db.QueryRow(ctx,
		`INSERT INTO todos (title)
		 VALUES ($1)
		 RETURNING id, title, done, created_at`,
		title,
	).Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt)
	if err != nil {
		return nil, domain.BackendError("create todo", err)
	}
	return &t, nil
}

// Update changes only the supplied fields in a single statement.
func (r *TodoRepository) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var t domain.Todo
	err := r.db.QueryRow(ctx,
		`UPDATE todos
		 SET title = COALESCE($2::text, title),
		     done  = COALESCE($3::boolean, done)
		 WHERE id = $1
		 RETURNING id, title, done, created_at`,
		id, patch.Title, patch.Done,
	).Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, domain.BackendError("update todo", err)
	}
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return domain.BackendError("delete todo", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *TodoRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return domain.BackendError("ping database", err)
	}
	return nil
}

// Close releases the pool.
func (r *TodoRepository) Close() error {
	r.db.Close()
	return nil
}
