package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes con sub-registro natural o jurídico.
// Cada escritura es una sola sentencia (CTE) para que el trigger diferido vea ambos registros.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `c.id, c.tipo, c.telefono, c.email, c.direccion, c.estado, c.version, c.created_at, c.updated_at,
	n.nombres, n.apellidos, n.dni, j.razon_social, j.ruc, j.representante_id`

const clientFrom = `clientes c
	LEFT JOIN clientes_naturales n ON n.cliente_id = c.id
	LEFT JOIN clientes_juridicos j ON j.cliente_id = c.id`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var (
		c                    entity.Client
		names, surnames, dni *string
		legalName, ruc       *string
		representativeID     *int64
	)
	if err := row.Scan(&c.ID, &c.Type, &c.Phone, &c.Email, &c.Address, &c.Estado, &c.Version, &c.CreatedAt, &c.UpdatedAt,
		&names, &surnames, &dni, &legalName, &ruc, &representativeID); err != nil {
		return nil, err
	}
	if names != nil {
		c.Natural = &entity.NaturalPerson{Names: *names, Surnames: deref(surnames), DNI: deref(dni)}
	}
	if legalName != nil {
		c.Juridico = &entity.LegalEntity{LegalName: *legalName, RUC: deref(ruc), RepresentativeID: representativeID}
	}
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserta el cliente y su sub-registro en una sola sentencia.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	sub, args := clientSubInsert(c, 6)
	query := `
		WITH c AS (
			INSERT INTO clientes (tipo, telefono, email, direccion, estado)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, version, created_at, updated_at
		), s AS (` + sub + `)
		SELECT id, version, created_at, updated_at FROM c`
	all := append([]any{c.Type, c.Phone, c.Email, c.Address, c.Estado}, args...)
	if err := r.q.QueryRow(ctx, query, all...).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return mapWriteError("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente con su sub-registro; nil, nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM `+clientFrom+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Update actualiza cabecera y sub-registro; si cambió el tipo elimina el sub-registro anterior.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	other := "clientes_juridicos"
	if c.Type == entity.ClientTypeJuridico {
		other = "clientes_naturales"
	}
	sub, args := clientSubUpsert(c, 8)
	query := `
		WITH c AS (
			UPDATE clientes SET tipo = $2, telefono = $3, email = $4, direccion = $5, estado = $6,
			    version = version + 1, updated_at = now()
			WHERE id = $1 AND version = $7
			RETURNING id, version, updated_at
		), other AS (
			DELETE FROM ` + other + ` WHERE cliente_id IN (SELECT id FROM c)
		), s AS (` + sub + `)
		SELECT version, updated_at FROM c`
	all := append([]any{c.ID, c.Type, c.Phone, c.Email, c.Address, c.Estado, c.Version}, args...)
	err := r.q.QueryRow(ctx, query, all...).Scan(&c.Version, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "clientes", c.ID)
		}
		return mapWriteError("update client", err)
	}
	return nil
}

// List lista clientes; busca por nombre, razón social, DNI, RUC y email.
func (r *ClientRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Client, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    clientColumns,
		from:       clientFrom,
		searchCols: []string{"n.nombres", "n.apellidos", "n.dni", "j.razon_social", "j.ruc", "c.email"},
		estadoCol:  "c.estado",
		orderBy:    "COALESCE(j.razon_social, n.apellidos || ' ' || n.nombres)",
	}, nil, f, scanClient)
}

// SoftDelete desactiva el cliente.
func (r *ClientRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "clientes", id, version)
}

// clientSubInsert INSERT del sub-registro a partir de la CTE c; placeholders desde $start.
func clientSubInsert(c *entity.Client, start int) (string, []any) {
	if c.Type == entity.ClientTypeJuridico && c.Juridico != nil {
		return fmt.Sprintf(`INSERT INTO clientes_juridicos (cliente_id, razon_social, ruc, representante_id)
			SELECT id, $%d, $%d, $%d FROM c`, start, start+1, start+2),
			[]any{c.Juridico.LegalName, c.Juridico.RUC, c.Juridico.RepresentativeID}
	}
	n := c.Natural
	if n == nil {
		n = &entity.NaturalPerson{}
	}
	return fmt.Sprintf(`INSERT INTO clientes_naturales (cliente_id, nombres, apellidos, dni)
		SELECT id, $%d, $%d, $%d FROM c`, start, start+1, start+2),
		[]any{n.Names, n.Surnames, n.DNI}
}

func clientSubUpsert(c *entity.Client, start int) (string, []any) {
	sub, args := clientSubInsert(c, start)
	if c.Type == entity.ClientTypeJuridico && c.Juridico != nil {
		return sub + ` ON CONFLICT (cliente_id) DO UPDATE SET razon_social = EXCLUDED.razon_social,
			ruc = EXCLUDED.ruc, representante_id = EXCLUDED.representante_id`, args
	}
	return sub + ` ON CONFLICT (cliente_id) DO UPDATE SET nombres = EXCLUDED.nombres,
		apellidos = EXCLUDED.apellidos, dni = EXCLUDED.dni`, args
}
