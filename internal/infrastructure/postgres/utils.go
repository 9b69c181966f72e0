package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/autopartes-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: referencia a un registro inexistente.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isCheckViolation 23514: constraint CHECK (precios, stock negativo, sub-registro de cliente).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// mapWriteError traduce errores de constraint a errores de dominio.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err), isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// versionMiss resuelve un UPDATE condicionado que no afectó filas: no existe o versión desactualizada.
func versionMiss(ctx context.Context, q Querier, table string, id int64) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// softDelete pone estado=false. Con version nil el borrado es idempotente;
// con version, solo procede si coincide con la actual.
func softDelete(ctx context.Context, q Querier, table string, id int64, version *int64) error {
	cmd, err := q.Exec(ctx, `
		UPDATE `+table+`
		SET estado = FALSE,
		    version = CASE WHEN estado THEN version + 1 ELSE version END,
		    updated_at = now()
		WHERE id = $1 AND ($2::bigint IS NULL OR version = $2)`, id, version)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return versionMiss(ctx, q, table, id)
	}
	return nil
}
