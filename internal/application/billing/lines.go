package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// priceRule completa y valida el precio unitario de una línea según el producto.
type priceRule func(p *entity.Product, price decimal.Decimal) (decimal.Decimal, error)

// buildLines valida productos (fuera de la tx, solo lectura) y arma las líneas con subtotal.
func buildLines(ctx context.Context, products repository.ProductRepository, in []dto.DetailLineRequest, rule priceRule) ([]entity.DetailLine, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.NewFieldError("detalles", "debe incluir al menos un producto")
	}
	lines := make([]entity.DetailLine, 0, len(in))
	for i, item := range in {
		field := fmt.Sprintf("detalles[%d]", i)
		if item.Quantity <= 0 {
			return nil, decimal.Zero, domain.NewFieldError(field+".cantidad", "la cantidad debe ser mayor a cero")
		}
		if item.UnitPrice.IsNegative() {
			return nil, decimal.Zero, domain.NewFieldError(field+".precio_unitario", "el precio no puede ser negativo")
		}
		product, err := products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil || !product.Estado {
			return nil, decimal.Zero, domain.NewFieldError(field+".id_producto", "el producto no existe o está inactivo")
		}
		price, err := rule(product, item.UnitPrice)
		if err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				fe.Field = field + "." + fe.Field
			}
			return nil, decimal.Zero, err
		}
		lines = append(lines, entity.DetailLine{
			ProductID:   product.ID,
			ProductCode: product.Code,
			Description: product.Description,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}
	return lines, entity.LinesTotal(lines), nil
}

// applyLines registra un movimiento por línea con referencia al documento.
func applyLines(ctx context.Context, inv InventoryUseCase, r TxRepos, lines []entity.DetailLine, movType, source string, refID int64, userID *int64, reason string) error {
	for _, l := range lines {
		if _, err := inv.ApplyInTx(ctx, r.Movements, r.Stock, inventory.MovementInputDTO{
			UserID:      userID,
			ProductID:   l.ProductID,
			Type:        movType,
			Quantity:    l.Quantity,
			Reason:      reason,
			Source:      source,
			ReferenceID: &refID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// reverseMovements aplica el movimiento contrario a cada movimiento del documento.
func reverseMovements(ctx context.Context, inv InventoryUseCase, r TxRepos, source string, refID int64, userID *int64, reason string) error {
	movs, err := r.Movements.ListByReference(ctx, source, refID)
	if err != nil {
		return err
	}
	for _, m := range movs {
		opposite := entity.MovementTypeOUT
		if m.Type == entity.MovementTypeOUT {
			opposite = entity.MovementTypeIN
		}
		ref := refID
		if _, err := inv.ApplyInTx(ctx, r.Movements, r.Stock, inventory.MovementInputDTO{
			UserID:      userID,
			ProductID:   m.ProductID,
			Type:        opposite,
			Quantity:    m.Quantity,
			Reason:      reason,
			Source:      source,
			ReferenceID: &ref,
		}); err != nil {
			return err
		}
	}
	return nil
}

// closeAccount cierra la cuenta generada por un documento a crédito. Con pagos registrados no se anula.
func closeAccount(ctx context.Context, r TxRepos, kind string, sourceID int64) error {
	acc, err := r.Accounts.GetBySource(ctx, kind, sourceID)
	if err != nil {
		return err
	}
	if acc == nil || !acc.Estado {
		return nil
	}
	if len(acc.Payments) > 0 {
		return domain.ErrHasPayments
	}
	return r.Accounts.Close(ctx, acc.ID)
}

func checkVersion(current int64, expected *int64) error {
	if expected != nil && *expected != current {
		return domain.ErrConflict
	}
	return nil
}

func toLineResponses(lines []entity.DetailLine) []dto.DetailLineResponse {
	out := make([]dto.DetailLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.DetailLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}
