package models

import "time"

// Usuario matches a row in the usuarios table. The password hash never
// leaves the server.
type Usuario struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Nombre       string    `json:"nombre"`
	PasswordHash string    `json:"-"`
	EsActivo     bool      `json:"es_activo"`
	EsAdmin      bool      `json:"es_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
