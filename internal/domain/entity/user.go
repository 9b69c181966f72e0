package entity

import "time"

// User usuario del panel. Nunca se elimina físicamente: Estado=false lo desactiva.
type User struct {
	ID               int64
	Username         string
	DisplayName      string
	PasswordHash     string // bcrypt
	IsAdmin          bool
	WorkerID         *int64 // trabajador vinculado (perfil)
	Estado           bool
	RefreshTokenHash string // sha256 del refresh token vigente; vacío = sin sesión
	RefreshExpiresAt *time.Time
	Modules          []Module
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Module módulo asignable del sistema (dato de referencia sembrado por migración).
type Module struct {
	ID   int64
	Name string
	Slug string
}
