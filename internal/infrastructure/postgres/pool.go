package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autopartes-api/pkg/config"
	"github.com/jhoicas/autopartes-api/pkg/logger"
)

// NewPool crea el pool de PostgreSQL: NUMERIC se lee como decimal.Decimal en todas
// las conexiones y las consultas lentas o fallidas quedan en el log.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && cfg.MinConns <= cfg.MaxConns {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	if log != nil && cfg.SlowQueryMs > 0 {
		poolConfig.ConnConfig.Tracer = newQueryTracer(log, time.Duration(cfg.SlowQueryMs)*time.Millisecond)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// queryTracer registra en warn las consultas que superan el umbral y en error las fallidas.
type queryTracer struct {
	log  *logger.Logger
	slow time.Duration
	now  func() time.Time
}

func newQueryTracer(log *logger.Logger, slow time.Duration) *queryTracer {
	return &queryTracer{log: log, slow: slow, now: time.Now}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: t.now(), sql: data.SQL})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)
	switch {
	case data.Err != nil && !isNoRows(data.Err):
		t.log.Error().Err(data.Err).Str("sql", compactSQL(start.sql)).Dur("latency", elapsed).Msg("consulta fallida")
	case elapsed >= t.slow:
		t.log.Warn().Str("sql", compactSQL(start.sql)).Dur("latency", elapsed).
			Int64("rows", data.CommandTag.RowsAffected()).Msg("consulta lenta")
	}
}

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// compactSQL colapsa espacios y recorta la sentencia para el log.
func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}
