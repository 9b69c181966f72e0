package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. Create inserta cabecera y líneas; usar dentro de TxRunner.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `v.id, v.fecha, v.cliente_id, COALESCE(j.razon_social, n.nombres || ' ' || n.apellidos, ''),
	v.trabajador_id, COALESCE(t.nombres || ' ' || t.apellidos, ''), v.tipo_pago, v.fecha_vencimiento, v.total,
	v.estado, v.version, v.created_at, v.updated_at`

const saleFrom = `ventas v
	LEFT JOIN clientes_naturales n ON n.cliente_id = v.cliente_id
	LEFT JOIN clientes_juridicos j ON j.cliente_id = v.cliente_id
	LEFT JOIN trabajadores t ON t.id = v.trabajador_id`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Date, &s.ClientID, &s.ClientName, &s.WorkerID, &s.WorkerName, &s.PaymentType,
		&s.DueDate, &s.Total, &s.Estado, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera y sus líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO ventas (fecha, cliente_id, trabajador_id, tipo_pago, fecha_vencimiento, total, estado)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, version, created_at, updated_at`,
		s.Date, s.ClientID, s.WorkerID, s.PaymentType, s.DueDate, s.Total,
	).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	s.Estado = true
	for i := range s.Lines {
		l := &s.Lines[i]
		if err := r.q.QueryRow(ctx, `
			INSERT INTO detalle_ventas (venta_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			s.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		).Scan(&l.ID); err != nil {
			return mapWriteError("insert sale line", err)
		}
	}
	return nil
}

// GetByID cabecera con líneas; nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate ídem bloqueando la cabecera.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.get(ctx, id, " FOR UPDATE OF v")
}

func (r *SaleRepo) get(ctx context.Context, id int64, lock string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM `+saleFrom+` WHERE v.id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	lines, err := listLines(ctx, r.q, "detalle_ventas", "venta_id", id)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return s, nil
}

// List lista cabeceras; búsqueda por cliente, documento y vendedor.
func (r *SaleRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    saleColumns,
		from:       saleFrom,
		searchCols: []string{"n.nombres", "n.apellidos", "n.dni", "j.razon_social", "j.ruc", "t.nombres"},
		estadoCol:  "v.estado",
		orderBy:    "v.fecha DESC, v.id DESC",
	}, nil, f, scanSale)
}

// Annul marca la venta como anulada.
func (r *SaleRepo) Annul(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE ventas SET estado = FALSE, version = version + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("annul sale: %w", err)
	}
	return nil
}
