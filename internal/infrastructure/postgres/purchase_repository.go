package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras sobre PostgreSQL. Create inserta cabecera y líneas; usar dentro de TxRunner.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `c.id, c.fecha, c.proveedor_id, p.razon_social, c.trabajador_id, c.nro_documento, c.tipo_pago,
	c.fecha_vencimiento, c.total, c.estado, c.version, c.created_at, c.updated_at`

const purchaseFrom = `compras c JOIN proveedores p ON p.id = c.proveedor_id`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.Date, &p.SupplierID, &p.SupplierName, &p.WorkerID, &p.DocumentNo, &p.PaymentType,
		&p.DueDate, &p.Total, &p.Estado, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta la cabecera y sus líneas.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO compras (fecha, proveedor_id, trabajador_id, nro_documento, tipo_pago, fecha_vencimiento, total, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id, version, created_at, updated_at`,
		p.Date, p.SupplierID, p.WorkerID, p.DocumentNo, p.PaymentType, p.DueDate, p.Total,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}
	p.Estado = true
	for i := range p.Lines {
		l := &p.Lines[i]
		if err := r.q.QueryRow(ctx, `
			INSERT INTO detalle_compras (compra_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		).Scan(&l.ID); err != nil {
			return mapWriteError("insert purchase line", err)
		}
	}
	return nil
}

// GetByID cabecera con líneas; nil, nil si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate ídem bloqueando la cabecera.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.get(ctx, id, " FOR UPDATE OF c")
}

func (r *PurchaseRepo) get(ctx context.Context, id int64, lock string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM `+purchaseFrom+` WHERE c.id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	lines, err := listLines(ctx, r.q, "detalle_compras", "compra_id", id)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return p, nil
}

// List lista cabeceras (sin líneas); búsqueda por proveedor y número de documento.
func (r *PurchaseRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Purchase, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    purchaseColumns,
		from:       purchaseFrom,
		searchCols: []string{"p.razon_social", "p.ruc", "c.nro_documento"},
		estadoCol:  "c.estado",
		orderBy:    "c.fecha DESC, c.id DESC",
	}, nil, f, scanPurchase)
}

// Annul marca la compra como anulada.
func (r *PurchaseRepo) Annul(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE compras SET estado = FALSE, version = version + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("annul purchase: %w", err)
	}
	return nil
}

// listLines líneas de detalle de compra o venta con datos del producto.
func listLines(ctx context.Context, q Querier, table, fk string, id int64) ([]entity.DetailLine, error) {
	rows, err := q.Query(ctx, `
		SELECT d.id, d.producto_id, p.codigo, p.descripcion, d.cantidad, d.precio_unitario, d.subtotal
		FROM `+table+` d JOIN productos p ON p.id = d.producto_id
		WHERE d.`+fk+` = $1 ORDER BY d.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	lines := make([]entity.DetailLine, 0)
	for rows.Next() {
		var l entity.DetailLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductCode, &l.Description, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
