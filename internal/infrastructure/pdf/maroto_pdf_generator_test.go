package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/infrastructure/pdf"
)

func TestFormatMoney(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "S/ 0.00", pdf.FormatMoney(decimal.Zero))
	assert.Equal(t, "S/ 999.90", pdf.FormatMoney(d("999.9")))
	assert.Equal(t, "S/ 1,234.50", pdf.FormatMoney(d("1234.5")))
	assert.Equal(t, "S/ 1,000,000.00", pdf.FormatMoney(d("1000000")))
	assert.Equal(t, "S/ -12.00", pdf.FormatMoney(d("-12")))
}

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "V-000042", pdf.ReceiptNumber(42))
}

func TestGenerateSaleReceipt(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(pdf.Business{Name: "Autopartes Quispe", RUC: "20601234567"})
	due := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:          42,
		Date:        time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		PaymentType: entity.PaymentTypeCredit,
		DueDate:     &due,
		Total:       decimal.RequireFromString("150.00"),
		Lines: []entity.DetailLine{
			{ProductCode: "PF-001", Description: "Pastilla de freno", Quantity: 2, UnitPrice: decimal.NewFromInt(60), Subtotal: decimal.NewFromInt(120)},
			{ProductCode: "FA-010", Description: "Filtro de aire", Quantity: 1, UnitPrice: decimal.NewFromInt(30), Subtotal: decimal.NewFromInt(30)},
		},
	}
	client := &entity.Client{Type: entity.ClientTypeNatural, Natural: &entity.NaturalPerson{Names: "Luis", Surnames: "Quispe", DNI: "45678912"}}

	out, err := g.GenerateSaleReceipt(context.Background(), sale, client)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.GenerateSaleReceipt(context.Background(), sale, nil)
	assert.Error(t, err)
}
