package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/pkg/session"
)

// saleDraft venta en preparación; sobrevive entre ejecuciones del panel hasta enviarla o cerrar sesión.
type saleDraft struct {
	ClientID    int64       `json:"id_cliente"`
	PaymentType string      `json:"tipo_pago"`
	DueDate     string      `json:"fecha_vencimiento,omitempty"`
	Lines       []draftLine `json:"detalles"`
}

type draftLine struct {
	ProductID int64           `json:"id_producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

var errEmptyDraft = errors.New("el borrador no tiene líneas")

func loadDraft(st session.Storage) (*saleDraft, error) {
	d := &saleDraft{PaymentType: "CONTADO"}
	if _, err := session.LoadJSON(st, session.KeySaleDraft, d); err != nil {
		return nil, fmt.Errorf("leer borrador: %w", err)
	}
	return d, nil
}

func saveDraft(st session.Storage, d *saleDraft) error {
	return session.SaveJSON(st, session.KeySaleDraft, d)
}

// addLine suma cantidad si el producto ya está con el mismo precio; si no, agrega la línea.
func (d *saleDraft) addLine(productID int64, qty int, price decimal.Decimal) error {
	if productID <= 0 || qty <= 0 {
		return errors.New("producto y cantidad deben ser positivos")
	}
	if price.IsNegative() {
		return errors.New("el precio no puede ser negativo")
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID && d.Lines[i].UnitPrice.Equal(price) {
			d.Lines[i].Quantity += qty
			return nil
		}
	}
	d.Lines = append(d.Lines, draftLine{ProductID: productID, Quantity: qty, UnitPrice: price})
	return nil
}

func (d *saleDraft) removeLine(productID int64) bool {
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (d *saleDraft) total() decimal.Decimal {
	t := decimal.Zero
	for _, l := range d.Lines {
		t = t.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return t
}

// request cuerpo de POST /api/ventas.
func (d *saleDraft) request() (map[string]any, error) {
	if len(d.Lines) == 0 {
		return nil, errEmptyDraft
	}
	if d.ClientID <= 0 {
		return nil, errors.New("falta el cliente (venta cliente <id>)")
	}
	req := map[string]any{
		"id_cliente": d.ClientID,
		"tipo_pago":  d.PaymentType,
		"detalles":   d.Lines,
	}
	if d.PaymentType == "CREDITO" {
		if d.DueDate == "" {
			return nil, errors.New("una venta a crédito requiere fecha de vencimiento")
		}
		req["fecha_vencimiento"] = d.DueDate + "T00:00:00Z"
	}
	return req, nil
}
