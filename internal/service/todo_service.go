package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// TodoService coordina el ciclo de vida de las tareas.
type TodoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrInvalidTodoID = errors.New("invalid todo id")
)

type CreateTodoInput struct {
	Text        string
	Completed   bool
	CompletedAt *int64
}

// UpdateTodoInput es la allow-list del PATCH: cualquier otro campo del body
// se ignora en el binding.
type UpdateTodoInput struct {
	Text      *string
	Completed *bool
}

// Create persiste la tarea con los campos tal como llegan. A diferencia de
// Update, acá no se fuerza el par completed/completedAt: la asimetría viene
// del comportamiento observado y se mantiene a propósito.
func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (domain.Todo, error) {
	todo := domain.Todo{
		ID:          uuid.NewString(),
		Text:        input.Text,
		Completed:   input.Completed,
		CompletedAt: input.CompletedAt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	return s.todos.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id string) (domain.Todo, error) {
	if uuid.Validate(id) != nil {
		return domain.Todo{}, ErrInvalidTodoID
	}
	todo, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, err
	}
	return todo, nil
}

// Update aplica el invariante: completed=true fija completedAt al timestamp
// actual pisando cualquier valor del caller; en cualquier otro caso la tarea
// queda completed=false con completedAt nulo, incluso si el caller solo tocó
// el texto.
func (s *TodoService) Update(ctx context.Context, id string, input UpdateTodoInput) (domain.Todo, error) {
	if uuid.Validate(id) != nil {
		return domain.Todo{}, ErrInvalidTodoID
	}

	completed := input.Completed != nil && *input.Completed
	var completedAt *int64
	if completed {
		ms := time.Now().UTC().UnixMilli()
		completedAt = &ms
	}

	todo, err := s.todos.Update(ctx, id, input.Text, completed, completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, err
	}
	return todo, nil
}

// Remove borra la tarea de forma permanente y devuelve el registro borrado.
func (s *TodoService) Remove(ctx context.Context, id string) (domain.Todo, error) {
	if uuid.Validate(id) != nil {
		return domain.Todo{}, ErrInvalidTodoID
	}
	todo, err := s.todos.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, err
	}
	return todo, nil
}
