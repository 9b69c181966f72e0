package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/autopartes-api/pkg/logger"
)

// Migrate aplica las migraciones pendientes de sourceURL (ej. file://migrations).
// Usa una conexión database/sql temporal con el driver pgx/v5/stdlib.
func Migrate(dsn, sourceURL string, log *logger.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión de migración: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping migración: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("driver de migración: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("instancia de migración: %w", err)
	}

	upErr := m.Up()
	version, dirty, _ := m.Version()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("cerrar fuente de migración: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("cerrar base de migración: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		log.Info().Msg("sin migraciones pendientes")
		return nil
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}
