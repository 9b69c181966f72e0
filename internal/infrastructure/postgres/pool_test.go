package postgres

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/autopartes-api/pkg/logger"
)

func tracerWithClock(buf *bytes.Buffer, slow time.Duration, steps ...time.Duration) *queryTracer {
	t := newQueryTracer(logger.New(logger.Config{Env: "production", Level: "debug", Output: buf}), slow)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	t.now = func() time.Time {
		d := time.Duration(0)
		if i < len(steps) {
			d = steps[i]
		}
		i++
		return base.Add(d)
	}
	return t
}

func TestQueryTracer_ConsultaLentaVaAWarn(t *testing.T) {
	var buf bytes.Buffer
	tr := tracerWithClock(&buf, 100*time.Millisecond, 0, 250*time.Millisecond)

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT *\n\t FROM productos"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 3")})

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "consulta lenta")
	assert.Contains(t, out, `"sql":"SELECT * FROM productos"`)
	assert.Contains(t, out, `"rows":3`)
}

func TestQueryTracer_ConsultaRapidaNoSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	tr := tracerWithClock(&buf, 100*time.Millisecond, 0, 5*time.Millisecond)

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestQueryTracer_ErrorVaAError(t *testing.T) {
	var buf bytes.Buffer
	tr := tracerWithClock(&buf, time.Second, 0, time.Millisecond)

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "UPDATE marcas SET nombre = $1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("deadlock detected")})

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "deadlock detected")
}

func TestQueryTracer_SinFilasNoEsError(t *testing.T) {
	var buf bytes.Buffer
	tr := tracerWithClock(&buf, time.Second, 0, time.Millisecond)

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})

	assert.Empty(t, buf.String())
}

func TestCompactSQL_Recorta(t *testing.T) {
	long := "SELECT " + strings.Repeat("a, ", 200) + "b FROM t"
	got := compactSQL(long)
	assert.Len(t, got, 303)
	assert.True(t, strings.HasSuffix(got, "..."))
}
