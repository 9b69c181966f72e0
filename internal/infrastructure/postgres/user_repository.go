package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.ModuleRepository = (*ModuleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// los módulos se agregan como JSON para traer el usuario completo en una sola fila
const userColumns = `u.id, u.username, u.display_name, u.password_hash, u.is_admin, u.trabajador_id, u.estado,
	u.refresh_token_hash, u.refresh_expires_at, u.version, u.created_at, u.updated_at,
	COALESCE((
		SELECT json_agg(json_build_object('id', m.id, 'name', m.nombre, 'slug', m.slug) ORDER BY m.id)
		FROM usuario_modulos um JOIN modulos m ON m.id = um.modulo_id
		WHERE um.usuario_id = u.id
	), '[]'::json)`

type moduleRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		mods []moduleRow
	)
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.PasswordHash, &u.IsAdmin, &u.WorkerID, &u.Estado,
		&u.RefreshTokenHash, &u.RefreshExpiresAt, &u.Version, &u.CreatedAt, &u.UpdatedAt, &mods); err != nil {
		return nil, err
	}
	u.Modules = make([]entity.Module, 0, len(mods))
	for _, m := range mods {
		u.Modules = append(u.Modules, entity.Module{ID: m.ID, Name: m.Name, Slug: m.Slug})
	}
	return &u, nil
}

// Create persiste un nuevo usuario (sin módulos; se asignan con SetModules).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO usuarios (username, display_name, password_hash, is_admin, trabajador_id, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at`,
		u.Username, u.DisplayName, u.PasswordHash, u.IsAdmin, u.WorkerID, u.Estado,
	).Scan(&u.ID, &u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return mapWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario con sus módulos.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

// GetByUsername obtiene un usuario por username (login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `u.username = $1`, username)
}

// GetByRefreshHash obtiene el usuario dueño del refresh token (hash sha256).
func (r *UserRepo) GetByRefreshHash(ctx context.Context, hash string) (*entity.User, error) {
	if hash == "" {
		return nil, nil
	}
	return r.getOne(ctx, `u.refresh_token_hash = $1`, hash)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios u WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile actualiza username, display_name y hash de contraseña.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		UPDATE usuarios SET username = $2, display_name = $3, password_hash = $4, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version, updated_at`,
		u.ID, u.Username, u.DisplayName, u.PasswordHash,
	).Scan(&u.Version, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// SetRefreshToken guarda (o limpia con hash vacío) el refresh token vigente.
func (r *UserRepo) SetRefreshToken(ctx context.Context, userID int64, hash string, expiresAt *time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET refresh_token_hash = $2, refresh_expires_at = $3 WHERE id = $1`,
		userID, hash, expiresAt)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}

// SetModules reemplaza el conjunto de módulos del usuario. Con version, exige que coincida.
// Devuelve la nueva versión del usuario.
func (r *UserRepo) SetModules(ctx context.Context, userID int64, moduleIDs []int64, version *int64) (int64, error) {
	var newVersion int64
	err := r.q.QueryRow(ctx, `
		WITH u AS (
			UPDATE usuarios SET version = version + 1, updated_at = now()
			WHERE id = $1 AND ($3::bigint IS NULL OR version = $3)
			RETURNING id, version
		), del AS (
			DELETE FROM usuario_modulos WHERE usuario_id IN (SELECT id FROM u)
		), ins AS (
			INSERT INTO usuario_modulos (usuario_id, modulo_id)
			SELECT u.id, m FROM u, unnest($2::bigint[]) AS m
		)
		SELECT version FROM u`, userID, moduleIDs, version,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, versionMiss(ctx, r.q, "usuarios", userID)
		}
		return 0, mapWriteError("set user modules", err)
	}
	return newVersion, nil
}

// List lista usuarios con sus módulos.
func (r *UserRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    userColumns,
		from:       "usuarios u",
		searchCols: []string{"u.username", "u.display_name"},
		estadoCol:  "u.estado",
		orderBy:    "u.username",
	}, nil, f, scanUser)
}

// SoftDelete desactiva el usuario y revoca su refresh token.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	if err := softDelete(ctx, r.q, "usuarios", id, version); err != nil {
		return err
	}
	return r.SetRefreshToken(ctx, id, "", nil)
}

// ModuleRepo catálogo de módulos.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador.
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// List todos los módulos ordenados por id.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	return r.query(ctx, `SELECT id, nombre, slug FROM modulos ORDER BY id`)
}

// GetBySlugs módulos cuyos slugs están en la lista.
func (r *ModuleRepo) GetBySlugs(ctx context.Context, slugs []string) ([]*entity.Module, error) {
	return r.query(ctx, `SELECT id, nombre, slug FROM modulos WHERE slug = ANY($1) ORDER BY id`, slugs)
}

func (r *ModuleRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Module, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Module, 0)
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Slug); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
