package dto

import (
	"time"

	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// RegisterRequest alta de usuario (solo administradores con el módulo usuarios).
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=50,alphanumunicode"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	DisplayName string  `json:"display_name" validate:"max=150"`
	IsAdmin     bool    `json:"is_admin"`
	WorkerID    *int64  `json:"worker_id" validate:"omitempty,min=1"`
	Modules     []int64 `json:"modulos" validate:"omitempty,dive,min=1"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest refresh token opaco (también se acepta en cookie).
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileResponse datos del trabajador vinculado al usuario.
type ProfileResponse struct {
	WorkerID  *int64 `json:"worker_id,omitempty"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// LoginResponse tokens, identidad y perfil.
type LoginResponse struct {
	Token        string               `json:"token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	User         *permission.Identity `json:"user"`
	Profile      *ProfileResponse     `json:"profile,omitempty"`
}

// MeResponse identidad y perfil del usuario autenticado.
type MeResponse struct {
	User    *permission.Identity `json:"user"`
	Profile *ProfileResponse     `json:"profile,omitempty"`
}

// UpdateProfileRequest cambios parciales del perfil propio.
type UpdateProfileRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=50,alphanumunicode"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=150"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	Telefono    *string `json:"telefono" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email,max=150"`
	Direccion   *string `json:"direccion" validate:"omitempty,max=255"`
}

// SetModulesRequest asignación completa de módulos de un usuario.
type SetModulesRequest struct {
	Modules []string `json:"modulos" validate:"dive,required"`
	Version *int64   `json:"version" validate:"omitempty,min=1"`
}

// UserResponse salida de un usuario (sin hashes).
type UserResponse struct {
	ID          int64               `json:"id"`
	Username    string              `json:"username"`
	DisplayName string              `json:"display_name"`
	IsAdmin     bool                `json:"is_admin"`
	WorkerID    *int64              `json:"worker_id,omitempty"`
	Estado      bool                `json:"estado"`
	Modules     []permission.Module `json:"modules"`
	Version     int64               `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
