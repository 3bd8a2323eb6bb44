package domain

import "time"

// Todo es una tarea pendiente. CompletedAt se expone en milisegundos epoch y
// solo es no-nulo cuando Completed es true (invariante aplicado en updates).
type Todo struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	CreatedAt   time.Time `json:"-"`
}
