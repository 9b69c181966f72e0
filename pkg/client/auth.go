package client

import (
	"context"
	"net/http"
	"time"

	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// Profile datos del trabajador vinculado al usuario (vacío si no hay vínculo).
type Profile struct {
	WorkerID  *int64 `json:"worker_id,omitempty"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// LoginResult respuesta de /auth/login y /auth/refresh.
type LoginResult struct {
	Token        string               `json:"token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	User         *permission.Identity `json:"user"`
	Profile      *Profile             `json:"profile,omitempty"`
}

// MeResult respuesta de /auth/me y /auth/profile.
type MeResult struct {
	User    *permission.Identity `json:"user"`
	Profile *Profile             `json:"profile,omitempty"`
}

// ProfileUpdate cambios parciales del perfil; nil significa "sin cambio".
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Password    *string `json:"password,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Email       *string `json:"email,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
}

// Empty no lleva ningún campo.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.DisplayName == nil && p.Password == nil &&
		p.Telefono == nil && p.Email == nil && p.Direccion == nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login intercambia credenciales por identidad y tokens.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh renueva el access token; los módulos asignados se releen del servidor.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revoca el refresh token en el servidor.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", refreshRequest{RefreshToken: refreshToken}, nil)
}

// Me identidad y perfil del usuario autenticado.
func (c *Client) Me(ctx context.Context) (*MeResult, error) {
	var out MeResult
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile envía solo los campos modificados.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfileUpdate) (*MeResult, error) {
	var out MeResult
	if err := c.do(ctx, http.MethodPut, "/auth/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Modules catálogo de módulos del sistema.
func (c *Client) Modules(ctx context.Context) ([]permission.Module, error) {
	var out Page[permission.Module]
	if err := c.do(ctx, http.MethodGet, "/modulos", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
