package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// whereBuilder arma condiciones con placeholders numerados.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) cond(c string) { b.conds = append(b.conds, c) }

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// search agrega un ILIKE sin tildes sobre las columnas dadas.
func (b *whereBuilder) search(term string, cols []string) {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return
	}
	p := b.arg("%" + escapeLike(term) + "%")
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("unaccent(lower(COALESCE(%s::text, ''))) LIKE unaccent(lower(%s))", c, p))
	}
	b.cond("(" + strings.Join(parts, " OR ") + ")")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// listSpec describe un listado: columnas, origen (con joins) y columnas de búsqueda.
type listSpec struct {
	columns    string
	from       string
	searchCols []string
	estadoCol  string
	orderBy    string
}

// runList cuenta, acota la página y trae las filas. Sin PageSize devuelve todo.
func runList[T any](ctx context.Context, q Querier, spec listSpec, b *whereBuilder, f repository.ListFilter, scan func(pgx.Row) (*T, error)) ([]*T, int, error) {
	if b == nil {
		b = &whereBuilder{}
	}
	if f.Estado != nil && spec.estadoCol != "" {
		b.cond(spec.estadoCol + " = " + b.arg(*f.Estado))
	}
	b.search(f.Search, spec.searchCols)
	where := b.sql()

	var total int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM `+spec.from+where, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	query := `SELECT ` + spec.columns + ` FROM ` + spec.from + where + ` ORDER BY ` + spec.orderBy
	if f.Paged() {
		page := listview.ClampPage(f.Page, total, f.PageSize)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}
	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()
	list := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}
