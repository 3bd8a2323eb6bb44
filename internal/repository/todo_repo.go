package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todo-api/internal/domain"
)

// TodoRepository define el contrato de persistencia para tareas. Las
// operaciones por id devuelven pgx.ErrNoRows cuando no hay coincidencia.
type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) error
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, id string) (domain.Todo, error)
	Update(ctx context.Context, id string, text *string, completed bool, completedAt *int64) (domain.Todo, error)
	Delete(ctx context.Context, id string) (domain.Todo, error)
}

// PgTodoRepository implementa TodoRepository usando pgxpool.
type PgTodoRepository struct {
	pool *pgxpool.Pool
}

func NewPgTodoRepository(pool *pgxpool.Pool) *PgTodoRepository {
	return &PgTodoRepository{pool: pool}
}

func (r *PgTodoRepository) Create(ctx context.Context, todo domain.Todo) error {
	const query = `
		INSERT INTO todos (id, text, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.CreatedAt,
	)
	return err
}

func (r *PgTodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	const query = `
		SELECT id, text, completed, completed_at, created_at
		FROM todos
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *PgTodoRepository) GetByID(ctx context.Context, id string) (domain.Todo, error) {
	const query = `
		SELECT id, text, completed, completed_at, created_at
		FROM todos
		WHERE id = $1
	`
	var t domain.Todo
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Text,
		&t.Completed,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, err
	}
	return t, err
}

// Update aplica el cambio en una sola sentencia: text solo se reemplaza si
// viene no-nulo, completed y completed_at se escriben siempre.
func (r *PgTodoRepository) Update(ctx context.Context, id string, text *string, completed bool, completedAt *int64) (domain.Todo, error) {
	const query = `
		UPDATE todos
		SET text = COALESCE($2, text), completed = $3, completed_at = $4
		WHERE id = $1
		RETURNING id, text, completed, completed_at, created_at
	`
	var t domain.Todo
	err := r.pool.QueryRow(ctx, query, id, text, completed, completedAt).Scan(
		&t.ID,
		&t.Text,
		&t.Completed,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, err
	}
	return t, err
}

func (r *PgTodoRepository) Delete(ctx context.Context, id string) (domain.Todo, error) {
	const query = `
		DELETE FROM todos
		WHERE id = $1
		RETURNING id, text, completed, completed_at, created_at
	`
	var t domain.Todo
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Text,
		&t.Completed,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, err
	}
	return t, err
}
