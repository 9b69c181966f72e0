package repository

import (
	"context"
	"time"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven nil, nil si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByRefreshHash(ctx context.Context, hash string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	SetRefreshToken(ctx context.Context, userID int64, hash string, expiresAt *time.Time) error
	SetModules(ctx context.Context, userID int64, moduleIDs []int64, version *int64) (int64, error)
	List(ctx context.Context, f ListFilter) ([]*entity.User, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// ModuleRepository catálogo de módulos.
type ModuleRepository interface {
	List(ctx context.Context) ([]*entity.Module, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]*entity.Module, error)
}
