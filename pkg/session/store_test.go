package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/pkg/client"
	"github.com/jhoicas/autopartes-api/pkg/permission"
	"github.com/jhoicas/autopartes-api/pkg/session"
)

type fakeAuth struct {
	mu         sync.Mutex
	loginRes   *client.LoginResult
	loginErr   error
	logoutCh   chan string
	patches    []client.ProfileUpdate
	profileRes *client.MeResult
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*client.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuth) Logout(ctx context.Context, refreshToken string) error {
	if f.logoutCh != nil {
		f.logoutCh <- refreshToken
	}
	return errors.New("servidor caído")
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, patch client.ProfileUpdate) (*client.MeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	return f.profileRes, nil
}

func vendedor() *client.LoginResult {
	return &client.LoginResult{
		Token:        "acc-1",
		RefreshToken: "ref-1",
		User: &permission.Identity{
			ID: 5, Username: "vendedor", DisplayName: "Ana Vega",
			Modules: []permission.Module{
				{ID: 6, Name: "Ventas", Slug: permission.SlugVentas},
				{ID: 1, Name: "Productos", Slug: permission.SlugProductos},
			},
		},
		Profile: &client.Profile{Nombres: "Ana", Apellidos: "Vega", Telefono: "999111222", Email: "ana@taller.pe"},
	}
}

func strp(s string) *string { return &s }

func TestStore_CurrentAntesDeHidratar(t *testing.T) {
	st := session.NewStore(session.NewMemoryStorage(), &fakeAuth{}, nil)
	assert.Equal(t, session.StateUninitialized, st.State())
	_, err := st.Current()
	assert.ErrorIs(t, err, session.ErrNotHydrated)
}

func TestStore_HydrateSinDatosEsAnonima(t *testing.T) {
	st := session.NewStore(session.NewMemoryStorage(), &fakeAuth{}, nil)
	s, err := st.Hydrate()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	assert.Equal(t, session.StateAnonymous, st.State())
	assert.Equal(t, permission.RedirectToLogin, st.Gate(permission.SlugVentas, "/ventas").Outcome)
}

func TestStore_LoginPersisteYRehidrataSinRed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sesion.json")
	auth := &fakeAuth{loginRes: vendedor()}
	st := session.NewStore(session.NewFileStorage(path), auth, nil)
	_, err := st.Hydrate()
	require.NoError(t, err)

	s, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "acc-1", st.Token())

	// nuevo proceso: sin Authenticator, solo disco
	reopened := session.NewStore(session.NewFileStorage(path), nil, nil)
	s2, err := reopened.Hydrate()
	require.NoError(t, err)
	require.True(t, s2.Authenticated())
	assert.Equal(t, "vendedor", s2.Identity().Username)
	assert.Equal(t, "999111222", s2.Profile().Telefono)

	assert.True(t, reopened.Gate(permission.SlugVentas, "/ventas").Allowed())
	denied := reopened.Gate(permission.SlugCompras, "/compras")
	assert.Equal(t, permission.AccessDenied, denied.Outcome)
	assert.Equal(t, permission.HomePath, denied.RedirectTo)
}

func TestStore_HydrateDescartaSlugDesconocido(t *testing.T) {
	mem := session.NewMemoryStorage()
	require.NoError(t, mem.Set(session.KeyAuth, []byte(`{"state":{"user":{"id":1,"username":"x","modules":[{"id":9,"name":"X","slug":"contabilidad"}]},"token":"t"},"version":0}`)))
	st := session.NewStore(mem, nil, nil)
	s, err := st.Hydrate()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	_, found, _ := mem.Get(session.KeyAuth)
	assert.False(t, found)
}

func TestStore_LoginFallidoLimpiaYAplanaMensajes(t *testing.T) {
	mem := session.NewMemoryStorage()
	auth := &fakeAuth{loginRes: vendedor()}
	st := session.NewStore(mem, auth, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	auth.loginRes = nil
	auth.loginErr = &client.ValidationError{Status: 422, Fields: map[string][]string{
		"password": {"es obligatorio"},
		"username": {"es obligatorio"},
	}}
	_, err = st.Login(context.Background(), "", "")
	var ae *client.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, []string{"password: es obligatorio", "username: es obligatorio"}, ae.Messages())
	assert.Equal(t, session.StateAnonymous, st.State())
	_, found, _ := mem.Get(session.KeyAuth)
	assert.False(t, found)
	_, found, _ = mem.Get(session.KeyProfile)
	assert.False(t, found)
}

func TestStore_LogoutNoEsperaAlServidor(t *testing.T) {
	mem := session.NewMemoryStorage()
	auth := &fakeAuth{loginRes: vendedor(), logoutCh: make(chan string, 1)}
	st := session.NewStore(mem, auth, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)
	require.NoError(t, session.SaveJSON(mem, session.KeySaleDraft, map[string]int{"items": 2}))

	st.Logout(context.Background())
	assert.Equal(t, session.StateAnonymous, st.State())
	assert.Empty(t, st.Token())
	_, found, _ := mem.Get(session.KeySaleDraft)
	assert.False(t, found)

	st.Wait()
	assert.Equal(t, "ref-1", <-auth.logoutCh)
	// el fallo de revocación no resucita la sesión
	assert.Equal(t, session.StateAnonymous, st.State())
}

func TestStore_Invalidate(t *testing.T) {
	st := session.NewStore(session.NewMemoryStorage(), &fakeAuth{loginRes: vendedor()}, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	st.Invalidate()
	s, err := st.Current()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}

func TestStore_UpdateProfileSinCambios(t *testing.T) {
	auth := &fakeAuth{loginRes: vendedor()}
	st := session.NewStore(session.NewMemoryStorage(), auth, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	_, err = st.UpdateProfile(context.Background(), client.ProfileUpdate{
		Username: strp("vendedor"),
		Telefono: strp("999111222"),
	})
	assert.ErrorIs(t, err, session.ErrNoChanges)
	assert.Empty(t, auth.patches)
}

func TestStore_UpdateProfileEnviaSoloDiferencias(t *testing.T) {
	res := vendedor()
	auth := &fakeAuth{loginRes: res}
	st := session.NewStore(session.NewMemoryStorage(), auth, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	updated := *res.Profile
	updated.Email = "ana.vega@taller.pe"
	auth.profileRes = &client.MeResult{User: res.User, Profile: &updated}

	s, err := st.UpdateProfile(context.Background(), client.ProfileUpdate{
		Username: strp("vendedor"),
		Email:    strp("ana.vega@taller.pe"),
	})
	require.NoError(t, err)
	require.Len(t, auth.patches, 1)
	assert.Nil(t, auth.patches[0].Username)
	assert.Equal(t, "ana.vega@taller.pe", *auth.patches[0].Email)
	assert.Equal(t, "ana.vega@taller.pe", s.Profile().Email)
}

func TestStore_UpdateProfileRecortaEspacios(t *testing.T) {
	res := vendedor()
	auth := &fakeAuth{loginRes: res}
	st := session.NewStore(session.NewMemoryStorage(), auth, nil)
	_, _ = st.Hydrate()
	_, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	// solo espacios alrededor del valor actual no es un cambio
	_, err = st.UpdateProfile(context.Background(), client.ProfileUpdate{Email: strp(" ana@taller.pe ")})
	assert.ErrorIs(t, err, session.ErrNoChanges)
	assert.Empty(t, auth.patches)

	updated := *res.Profile
	updated.Email = "nuevo@taller.pe"
	auth.profileRes = &client.MeResult{User: res.User, Profile: &updated}
	_, err = st.UpdateProfile(context.Background(), client.ProfileUpdate{
		Email:       strp("  nuevo@taller.pe "),
		DisplayName: strp(" Ana Vega"),
	})
	require.NoError(t, err)
	require.Len(t, auth.patches, 1)
	assert.Equal(t, "nuevo@taller.pe", *auth.patches[0].Email)
	assert.Nil(t, auth.patches[0].DisplayName)
}

func TestSession_IdentidadEsCopia(t *testing.T) {
	st := session.NewStore(session.NewMemoryStorage(), &fakeAuth{loginRes: vendedor()}, nil)
	_, _ = st.Hydrate()
	s, err := st.Login(context.Background(), "vendedor", "secreto")
	require.NoError(t, err)

	id := s.Identity()
	id.Modules = nil
	id.IsAdmin = true
	assert.Len(t, s.Identity().Modules, 2)
	assert.False(t, s.Identity().IsAdmin)
}
