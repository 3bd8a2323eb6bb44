package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgTokenRegistry persiste la lista de tokens activos en la tabla
// user_tokens. Es el backend por defecto.
type pgTokenRegistry struct {
	pool *pgxpool.Pool
}

func NewPgTokenRegistry(pool *pgxpool.Pool) TokenRegistry {
	return &pgTokenRegistry{pool: pool}
}

func (r *pgTokenRegistry) Append(ctx context.Context, userID, scope, token string) error {
	const query = `
		INSERT INTO user_tokens (user_id, scope, token)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, userID, scope, token)
	return err
}

func (r *pgTokenRegistry) Contains(ctx context.Context, userID, scope, token string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND scope = $2 AND token = $3
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, scope, token).Scan(&exists)
	return exists, err
}

func (r *pgTokenRegistry) Remove(ctx context.Context, userID, token string) error {
	const query = `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2
	`
	_, err := r.pool.Exec(ctx, query, userID, token)
	return err
}
