package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/jwt"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

type fakeUsers struct {
	repository.UserRepository
	items map[int64]*entity.User
	mods  []*entity.Module
}

func (f *fakeUsers) byModuleIDs(ids []int64) []entity.Module {
	out := make([]entity.Module, 0, len(ids))
	for _, id := range ids {
		for _, m := range f.mods {
			if m.ID == id {
				out = append(out, *m)
			}
		}
	}
	return out
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	for _, x := range f.items {
		if x.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	u.ID = int64(len(f.items) + 1)
	u.Version = 1
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByRefreshHash(_ context.Context, hash string) (*entity.User, error) {
	for _, u := range f.items {
		if hash != "" && u.RefreshTokenHash == hash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) SetRefreshToken(_ context.Context, userID int64, hash string, exp *time.Time) error {
	u := f.items[userID]
	u.RefreshTokenHash = hash
	u.RefreshExpiresAt = exp
	return nil
}

func (f *fakeUsers) SetModules(_ context.Context, userID int64, ids []int64, _ *int64) (int64, error) {
	u := f.items[userID]
	u.Modules = f.byModuleIDs(ids)
	u.Version++
	return u.Version, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, u *entity.User) error {
	cp := *u
	cp.Version++
	f.items[u.ID] = &cp
	return nil
}

type fakeWorkers struct {
	repository.WorkerRepository
	items   map[int64]*entity.Worker
	updates int
}

func (f *fakeWorkers) GetByID(_ context.Context, id int64) (*entity.Worker, error) {
	w, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWorkers) UpdateContact(_ context.Context, w *entity.Worker) error {
	f.updates++
	cp := *w
	f.items[w.ID] = &cp
	return nil
}

type fakeModules struct {
	repository.ModuleRepository
	items []*entity.Module
}

func (f *fakeModules) List(_ context.Context) ([]*entity.Module, error) { return f.items, nil }

const secret = "test-secret"

func newAuth(t *testing.T) (*AuthUseCase, *fakeUsers, *fakeWorkers) {
	t.Helper()
	mods := []*entity.Module{
		{ID: 1, Name: "Productos", Slug: "productos"},
		{ID: 8, Name: "Ventas", Slug: "ventas"},
	}
	users := &fakeUsers{items: map[int64]*entity.User{}, mods: mods}
	workers := &fakeWorkers{items: map[int64]*entity.Worker{
		3: {ID: 3, Names: "Rosa", Surnames: "Huamán", DNI: "41234567", Phone: "999111222", Estado: true},
	}}
	uc := NewAuthUseCase(users, workers, &fakeModules{items: mods}, JWTConfig{
		Secret: secret, ExpMinutes: 30, RefreshHours: 24, Issuer: "test",
	})
	return uc, users, workers
}

func register(t *testing.T, uc *AuthUseCase) *dto.UserResponse {
	t.Helper()
	worker := int64(3)
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "rosa",
		Password: "secreta123",
		WorkerID: &worker,
		Modules:  []int64{8, 8},
	})
	require.NoError(t, err)
	return out
}

func TestRegisterUser(t *testing.T) {
	uc, users, _ := newAuth(t)
	out := register(t, uc)

	assert.Equal(t, "rosa", out.DisplayName)
	require.Len(t, out.Modules, 1)
	assert.Equal(t, permission.SlugVentas, out.Modules[0].Slug)
	assert.NotEqual(t, "secreta123", users.items[out.ID].PasswordHash)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "rosa", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "pepe", Password: "otraclave1", Modules: []int64{77}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := int64(40)
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "pepe", Password: "otraclave1", WorkerID: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, users, _ := newAuth(t)
	created := register(t, uc)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	require.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, created.ID, out.User.ID)
	require.NotNil(t, out.Profile)
	assert.Equal(t, "Rosa", out.Profile.Nombres)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas"}, claims.Modules)
	assert.Equal(t, hashToken(out.RefreshToken), users.items[created.ID].RefreshTokenHash)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	users.items[created.ID].Estado = false
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_RotaYExpira(t *testing.T) {
	uc, _, _ := newAuth(t)
	register(t, uc)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	first, err := uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "secreta123"})
	require.NoError(t, err)

	second, err := uc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = uc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el token anterior queda invalidado")

	now = now.Add(25 * time.Hour)
	_, err = uc.Refresh(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	uc, users, _ := newAuth(t)
	created := register(t, uc)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "secreta123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), out.RefreshToken))
	assert.Empty(t, users.items[created.ID].RefreshTokenHash)
	_, err = uc.Refresh(context.Background(), out.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// repetir o mandar basura no falla
	assert.NoError(t, uc.Logout(context.Background(), out.RefreshToken))
	assert.NoError(t, uc.Logout(context.Background(), "desconocido"))
	assert.NoError(t, uc.Logout(context.Background(), ""))
}

func TestLogoutConTokenAjenoNoRevocaOtraSesion(t *testing.T) {
	uc, users, _ := newAuth(t)
	created := register(t, uc)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "rosa", Password: "secreta123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), "otro-token"))
	assert.NotEmpty(t, users.items[created.ID].RefreshTokenHash)
}

func TestUpdateProfile(t *testing.T) {
	uc, _, workers := newAuth(t)
	created := register(t, uc)
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, created.ID, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrNoChanges)

	same := "999111222"
	_, err = uc.UpdateProfile(ctx, created.ID, dto.UpdateProfileRequest{Telefono: &same})
	assert.ErrorIs(t, err, domain.ErrNoChanges)

	phone := "988777666"
	name := "Rosa H."
	out, err := uc.UpdateProfile(ctx, created.ID, dto.UpdateProfileRequest{Telefono: &phone, DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rosa H.", out.User.DisplayName)
	assert.Equal(t, "988777666", out.Profile.Telefono)
	assert.Equal(t, 1, workers.updates)

	pass := "nuevaclave9"
	_, err = uc.UpdateProfile(ctx, created.ID, dto.UpdateProfileRequest{Password: &pass})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "rosa", Password: "nuevaclave9"})
	assert.NoError(t, err)
}

func TestUpdateProfile_ContactoSinTrabajador(t *testing.T) {
	uc, _, _ := newAuth(t)
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "caja", Password: "secreta123"})
	require.NoError(t, err)

	email := "caja@taller.pe"
	_, err = uc.UpdateProfile(context.Background(), out.ID, dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	me, err := uc.Me(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Nil(t, me.Profile)
}

func TestEnsureAdmin(t *testing.T) {
	uc, users, _ := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.True(t, created)

	admin, _ := users.GetByUsername(ctx, "admin")
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.Len(t, admin.Modules, 2)

	created, err = uc.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.False(t, created)
}
