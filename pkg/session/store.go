// Package session mantiene la sesión del panel: identidad, tokens y perfil,
// persistidos en almacenamiento local y rehidratados al arrancar.
//
// La sesión se confía del lado del cliente hasta que una petición protegida
// devuelve 401; en ese momento Invalidate la descarta.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/autopartes-api/pkg/client"
	"github.com/jhoicas/autopartes-api/pkg/logger"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// Errores del store.
var (
	ErrNotHydrated      = errors.New("la sesión aún no fue hidratada")
	ErrNotAuthenticated = errors.New("no hay sesión iniciada")
	ErrNoChanges        = errors.New("no hay cambios para guardar")
)

// logoutTimeout límite de la revocación en segundo plano.
const logoutTimeout = 5 * time.Second

// State ciclo de vida de la sesión.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateAnonymous:
		return "anonymous"
	default:
		return "authenticated"
	}
}

// Authenticator endpoints de autenticación que usa el store (client.Client los implementa).
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, patch client.ProfileUpdate) (*client.MeResult, error)
}

// Session valor inmutable: cada transición produce uno nuevo.
type Session struct {
	identity  *permission.Identity
	profile   *client.Profile
	token     string
	refresh   string
	expiresAt time.Time
}

// Authenticated hay identidad y token.
func (s Session) Authenticated() bool { return s.identity != nil && s.token != "" }

// Identity copia de la identidad (nil si anónima).
func (s Session) Identity() *permission.Identity { return cloneIdentity(s.identity) }

// Profile copia del perfil vinculado (nil si no hay).
func (s Session) Profile() *client.Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Token access token vigente.
func (s Session) Token() string { return s.token }

// RefreshToken refresh token vigente.
func (s Session) RefreshToken() string { return s.refresh }

// ExpiresAt vencimiento informado por el servidor.
func (s Session) ExpiresAt() time.Time { return s.expiresAt }

// persisted forma serializada bajo KeyAuth.
type persisted struct {
	State struct {
		User         *permission.Identity `json:"user"`
		Token        string               `json:"token"`
		RefreshToken string               `json:"refresh_token"`
		ExpiresAt    time.Time            `json:"expires_at"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store dueño único de la sesión. Seguro para uso concurrente.
type Store struct {
	mu      sync.RWMutex
	state   State
	current Session
	storage Storage
	auth    Authenticator
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewStore crea el store en estado Uninitialized. Llamar Hydrate antes de consultarlo.
func NewStore(storage Storage, auth Authenticator, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{storage: storage, auth: auth, log: log}
}

// State estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current sesión actual. Falla si aún no se hidrató.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == StateUninitialized || s.state == StateHydrating {
		return Session{}, ErrNotHydrated
	}
	return s.current, nil
}

// Token implementa client.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.token
}

// Hydrate lee la sesión persistida. Datos corruptos se descartan y la sesión queda anónima.
func (s *Store) Hydrate() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateHydrating

	var rec persisted
	found, err := LoadJSON(s.storage, KeyAuth, &rec)
	if err != nil {
		s.log.Warn().Err(err).Msg("sesión persistida inválida, se descarta")
		_ = s.storage.Delete(KeyAuth, KeyProfile)
		s.setLocked(Session{})
		return s.current, nil
	}
	if !found || rec.State.User == nil || rec.State.Token == "" {
		s.setLocked(Session{})
		return s.current, nil
	}

	next := Session{
		identity:  rec.State.User,
		token:     rec.State.Token,
		refresh:   rec.State.RefreshToken,
		expiresAt: rec.State.ExpiresAt,
	}
	var prof client.Profile
	if ok, err := LoadJSON(s.storage, KeyProfile, &prof); err == nil && ok {
		next.profile = &prof
	}
	s.setLocked(next)
	return s.current, nil
}

// Login autentica contra el servidor y persiste identidad, tokens y perfil.
// Si falla, la sesión queda anónima y el error es *client.AuthError con mensajes legibles,
// salvo fallos de red o del servidor que se devuelven tal cual.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	res, err := s.auth.Login(ctx, username, password)
	if err == nil && (res == nil || res.User == nil || res.Token == "") {
		err = &client.ServerError{Status: 200, Message: "respuesta de login incompleta"}
	}
	if err != nil {
		s.mu.Lock()
		_ = s.storage.Delete(KeyAuth, KeyProfile)
		s.setLocked(Session{})
		s.mu.Unlock()
		return Session{}, asAuthError(err)
	}

	next := Session{
		identity:  res.User,
		profile:   res.Profile,
		token:     res.Token,
		refresh:   res.RefreshToken,
		expiresAt: res.ExpiresAt,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(next); err != nil {
		return Session{}, err
	}
	s.setLocked(next)
	s.log.Info().Int64("user_id", res.User.ID).Str("username", res.User.Username).Msg("sesión iniciada")
	return s.current, nil
}

// Logout borra la sesión local de inmediato y revoca el token en segundo plano.
// El resultado de la revocación no se espera ni se informa.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	refresh := s.current.refresh
	_ = s.storage.Delete(KeyAuth, KeyProfile, KeySaleDraft)
	s.setLocked(Session{})
	s.mu.Unlock()

	if refresh == "" || s.auth == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		defer cancel()
		if err := s.auth.Logout(cctx, refresh); err != nil {
			s.log.Debug().Err(err).Msg("revocación de sesión falló")
		}
	}()
}

// Wait espera las revocaciones pendientes (al cerrar el proceso).
func (s *Store) Wait() { s.wg.Wait() }

// Invalidate descarta la sesión sin llamar al servidor (401 en una petición protegida).
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return
	}
	_ = s.storage.Delete(KeyAuth, KeyProfile)
	s.setLocked(Session{})
	s.log.Info().Msg("sesión invalidada por el servidor")
}

// UpdateProfile envía solo los campos que difieren del perfil cargado.
// Si nada cambió devuelve ErrNoChanges sin llamar al servidor.
func (s *Store) UpdateProfile(ctx context.Context, patch client.ProfileUpdate) (Session, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if !cur.Authenticated() {
		return Session{}, ErrNotAuthenticated
	}

	diff := changedFields(cur, patch)
	if diff.Empty() {
		return cur, ErrNoChanges
	}
	res, err := s.auth.UpdateProfile(ctx, diff)
	if err != nil {
		return cur, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	if res != nil && res.User != nil {
		next.identity = res.User
	}
	if res != nil && res.Profile != nil {
		next.profile = res.Profile
	}
	if err := s.persistLocked(next); err != nil {
		return Session{}, err
	}
	s.setLocked(next)
	return s.current, nil
}

// Gate aplica el gate de permisos a la sesión actual.
func (s *Store) Gate(slug permission.Slug, requestedPath string) permission.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var id *permission.Identity
	if s.state == StateAuthenticated {
		id = s.current.identity
	}
	return permission.Decide(id, slug, requestedPath)
}

// Storage almacenamiento subyacente (borrador de venta).
func (s *Store) Storage() Storage { return s.storage }

func (s *Store) setLocked(next Session) {
	next.identity = cloneIdentity(next.identity)
	s.current = next
	if next.Authenticated() {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
}

func (s *Store) persistLocked(next Session) error {
	var rec persisted
	rec.State.User = next.identity
	rec.State.Token = next.token
	rec.State.RefreshToken = next.refresh
	rec.State.ExpiresAt = next.expiresAt
	if err := SaveJSON(s.storage, KeyAuth, rec); err != nil {
		return fmt.Errorf("persistir sesión: %w", err)
	}
	if next.profile != nil {
		if err := SaveJSON(s.storage, KeyProfile, next.profile); err != nil {
			return fmt.Errorf("persistir perfil: %w", err)
		}
	} else {
		_ = s.storage.Delete(KeyProfile)
	}
	return nil
}

func changedFields(cur Session, p client.ProfileUpdate) client.ProfileUpdate {
	var out client.ProfileUpdate
	id := cur.identity
	prof := client.Profile{}
	if cur.profile != nil {
		prof = *cur.profile
	}
	out.Username = changed(p.Username, id.Username)
	out.DisplayName = changed(p.DisplayName, id.DisplayName)
	if p.Password != nil && *p.Password != "" {
		out.Password = p.Password
	}
	out.Telefono = changed(p.Telefono, prof.Telefono)
	out.Email = changed(p.Email, prof.Email)
	out.Direccion = changed(p.Direccion, prof.Direccion)
	return out
}

// changed valor recortado si difiere del actual; nil si no hay cambio.
func changed(v *string, current string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == current {
		return nil
	}
	return &trimmed
}

func asAuthError(err error) error {
	var ae *client.AuthError
	if errors.As(err, &ae) {
		return ae
	}
	var ve *client.ValidationError
	if errors.As(err, &ve) {
		return &client.AuthError{Status: ve.Status, Message: strings.Join(ve.Messages(), "\n"), Fields: ve.Fields}
	}
	return err
}

func cloneIdentity(id *permission.Identity) *permission.Identity {
	if id == nil {
		return nil
	}
	c := *id
	c.Modules = append([]permission.Module(nil), id.Modules...)
	if id.WorkerID != nil {
		w := *id.WorkerID
		c.WorkerID = &w
	}
	return &c
}
