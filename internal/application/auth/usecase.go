package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/application/usecase"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret       string
	ExpMinutes   int
	RefreshHours int
	Issuer       string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh, logout y perfil propio.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	workerRepo repository.WorkerRepository
	moduleRepo repository.ModuleRepository
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, workerRepo repository.WorkerRepository, moduleRepo repository.ModuleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, workerRepo: workerRepo, moduleRepo: moduleRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario: hashea password con bcrypt, persiste y asigna módulos.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if in.WorkerID != nil {
		w, err := uc.workerRepo.GetByID(ctx, *in.WorkerID)
		if err != nil {
			return nil, err
		}
		if w == nil || !w.Estado {
			return nil, domain.NewFieldError("worker_id", "el trabajador no existe o está inactivo")
		}
	}
	moduleIDs, err := uc.checkModules(ctx, in.Modules)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = username
	}
	user := &entity.User{
		Username:     username,
		DisplayName:  name,
		PasswordHash: string(hash),
		IsAdmin:      in.IsAdmin,
		WorkerID:     in.WorkerID,
		Estado:       true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(moduleIDs) > 0 {
		if _, err := uc.userRepo.SetModules(ctx, user.ID, moduleIDs, nil); err != nil {
			return nil, err
		}
	}
	created, err := uc.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(created), nil
}

// EnsureAdmin crea el administrador inicial con todos los módulos si aún no existe.
// Sin password configurado no hace nada.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	mods, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return false, err
	}
	ids := make([]int64, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{
		Username:    username,
		Password:    password,
		DisplayName: "Administrador",
		IsAdmin:     true,
		Modules:     ids,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica username/password, genera JWT y refresh token y retorna la identidad con su perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Estado {
		return nil, domain.ErrForbidden
	}
	return uc.issue(ctx, user)
}

// Refresh rota el refresh token y emite un JWT nuevo con los módulos vigentes.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByRefreshHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshExpiresAt == nil || !uc.now().Before(*user.RefreshExpiresAt) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Estado {
		return nil, domain.ErrForbidden
	}
	return uc.issue(ctx, user)
}

// Logout invalida el refresh token recibido. Token vacío o desconocido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user, err := uc.userRepo.GetByRefreshHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return uc.userRepo.SetRefreshToken(ctx, user.ID, "", nil)
}

// Me identidad y perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profile(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{User: usecase.IdentityOf(user), Profile: profile}, nil
}

// UpdateProfile aplica cambios parciales: credenciales en el usuario, contacto en el trabajador vinculado.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, in dto.UpdateProfileRequest) (*dto.MeResponse, error) {
	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	userChanged := false
	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" && v != user.Username {
			user.Username = v
			userChanged = true
		}
	}
	if in.DisplayName != nil {
		if v := strings.TrimSpace(*in.DisplayName); v != user.DisplayName {
			user.DisplayName = v
			userChanged = true
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		userChanged = true
	}

	contact := in.Telefono != nil || in.Email != nil || in.Direccion != nil
	var worker *entity.Worker
	workerChanged := false
	if contact {
		if user.WorkerID == nil {
			return nil, domain.NewFieldError("worker_id", "el usuario no tiene un trabajador vinculado")
		}
		worker, err = uc.workerRepo.GetByID(ctx, *user.WorkerID)
		if err != nil {
			return nil, err
		}
		if worker == nil {
			return nil, domain.ErrNotFound
		}
		workerChanged = setIfChanged(&worker.Phone, in.Telefono)
		workerChanged = setIfChanged(&worker.Email, in.Email) || workerChanged
		workerChanged = setIfChanged(&worker.Address, in.Direccion) || workerChanged
	}

	if !userChanged && !workerChanged {
		return nil, domain.ErrNoChanges
	}
	if userChanged {
		if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
			return nil, err
		}
	}
	if workerChanged {
		if err := uc.workerRepo.UpdateContact(ctx, worker); err != nil {
			return nil, err
		}
	}
	return uc.Me(ctx, userID)
}

func (uc *AuthUseCase) activeUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Estado {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	identity := usecase.IdentityOf(user)
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		WorkerID: user.WorkerID,
		Modules:  identity.Slugs(),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	refreshExp := now.Add(time.Duration(uc.jwtCfg.RefreshHours) * time.Hour)
	if err := uc.userRepo.SetRefreshToken(ctx, user.ID, hashToken(refresh), &refreshExp); err != nil {
		return nil, err
	}
	profile, err := uc.profile(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:         identity,
		Profile:      profile,
	}, nil
}

// profile datos del trabajador vinculado; nil si no hay.
func (uc *AuthUseCase) profile(ctx context.Context, user *entity.User) (*dto.ProfileResponse, error) {
	if user.WorkerID == nil {
		return nil, nil
	}
	w, err := uc.workerRepo.GetByID(ctx, *user.WorkerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return &dto.ProfileResponse{
		WorkerID:  user.WorkerID,
		Nombres:   w.Names,
		Apellidos: w.Surnames,
		Telefono:  w.Phone,
		Email:     w.Email,
		Direccion: w.Address,
	}, nil
}

// checkModules valida que los IDs existan en el catálogo, sin duplicados.
func (uc *AuthUseCase) checkModules(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	mods, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(mods))
	for _, m := range mods {
		known[m.ID] = true
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !known[id] {
			return nil, domain.NewFieldError("modulos", "módulo inexistente")
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func setIfChanged(dst *string, v *string) bool {
	if v == nil {
		return false
	}
	nv := strings.TrimSpace(*v)
	if nv == *dst {
		return false
	}
	*dst = nv
	return true
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
