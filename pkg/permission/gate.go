// Package permission decide si una identidad autenticada puede acceder a un módulo.
//
// La decisión es pura y síncrona: depende solo de la identidad ya hidratada
// (en el cliente, la sesión persistida; en el servidor, los claims del JWT).
// No hay llamadas de red durante el chequeo.
package permission

import (
	"net/url"
	"time"
)

// Rutas y espera usadas por el gate.
const (
	LoginPath           = "/login"
	HomePath            = "/"
	DeniedRedirectDelay = 8 * time.Second
)

// Module registro asignable {id, name, slug}.
type Module struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug Slug   `json:"slug"`
}

// Identity usuario autenticado más su conjunto de permisos derivado.
type Identity struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	IsAdmin     bool     `json:"is_admin"`
	WorkerID    *int64   `json:"worker_id,omitempty"`
	Modules     []Module `json:"modules"`
}

// Has informa si el slug está entre los módulos asignados (no considera IsAdmin).
func (i *Identity) Has(slug Slug) bool {
	if i == nil {
		return false
	}
	for _, m := range i.Modules {
		if m.Slug == slug {
			return true
		}
	}
	return false
}

// Slugs devuelve los slugs asignados como strings (para claims).
func (i *Identity) Slugs() []string {
	if i == nil {
		return nil
	}
	out := make([]string, 0, len(i.Modules))
	for _, m := range i.Modules {
		out = append(out, string(m.Slug))
	}
	return out
}

// Outcome resultado del gate.
type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	AccessDenied
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	default:
		return "access_denied"
	}
}

// Decision describe qué hacer con la petición.
//
//   - RedirectToLogin: RedirectTo = /login, Next = ruta pedida originalmente.
//   - AccessDenied: mostrar "Acceso denegado", redirigir a RedirectTo tras After, ofrecer enlace manual.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Next       string
	After      time.Duration
}

// Allowed atajo para Outcome == Allow.
func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Location URL de redirección; para login conserva la ruta pedida en ?next=.
func (d Decision) Location() string {
	if d.Outcome == RedirectToLogin && d.Next != "" {
		return d.RedirectTo + "?next=" + url.QueryEscape(d.Next)
	}
	return d.RedirectTo
}

// Decide aplica la regla: sin identidad → login; admin → permitido;
// resto → permitido sólo si el slug está asignado.
func Decide(identity *Identity, slug Slug, requestedPath string) Decision {
	if identity == nil {
		return Decision{Outcome: RedirectToLogin, RedirectTo: LoginPath, Next: requestedPath}
	}
	if identity.IsAdmin || identity.Has(slug) {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: AccessDenied, RedirectTo: HomePath, After: DeniedRedirectDelay}
}
