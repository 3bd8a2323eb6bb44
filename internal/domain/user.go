package domain

import "time"

// ScopeAuth es el único scope de token emitido por el servicio.
const ScopeAuth = "auth"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserToken es una entrada de la lista de tokens activos de un usuario.
type UserToken struct {
	Scope string `json:"scope"`
	Token string `json:"token"`
}
