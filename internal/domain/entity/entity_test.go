package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

func TestClientValidate(t *testing.T) {
	tests := []struct {
		name    string
		client  entity.Client
		wantErr bool
	}{
		{"natural completo", entity.Client{Type: entity.ClientTypeNatural, Natural: &entity.NaturalPerson{Names: "Luis", DNI: "40112233"}}, false},
		{"juridico completo", entity.Client{Type: entity.ClientTypeJuridico, Juridico: &entity.LegalEntity{LegalName: "Transportes SAC", RUC: "20123456789"}}, false},
		{"natural sin sub-registro", entity.Client{Type: entity.ClientTypeNatural}, true},
		{"juridico sin sub-registro", entity.Client{Type: entity.ClientTypeJuridico}, true},
		{"ambos sub-registros", entity.Client{
			Type:     entity.ClientTypeNatural,
			Natural:  &entity.NaturalPerson{Names: "Luis", DNI: "40112233"},
			Juridico: &entity.LegalEntity{LegalName: "X", RUC: "1"},
		}, true},
		{"sub-registro cruzado", entity.Client{Type: entity.ClientTypeJuridico, Natural: &entity.NaturalPerson{Names: "Luis", DNI: "1"}}, true},
		{"tipo desconocido", entity.Client{Type: "OTRO"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProductValidatePrices(t *testing.T) {
	d := decimal.RequireFromString
	ok := entity.Product{CostPrice: d("10"), MinSalePrice: d("12"), MaxSalePrice: d("15"), WholesalePrice: d("11")}
	assert.NoError(t, ok.ValidatePrices())

	minBajoCosto := ok
	minBajoCosto.MinSalePrice = d("9")
	var fe *domain.FieldError
	assert.True(t, errors.As(minBajoCosto.ValidatePrices(), &fe))
	assert.Equal(t, "precio_venta_min", fe.Field)

	maxBajoMin := ok
	maxBajoMin.MaxSalePrice = d("11")
	assert.Error(t, maxBajoMin.ValidatePrices())

	mayorFuera := ok
	mayorFuera.WholesalePrice = d("16")
	assert.Error(t, mayorFuera.ValidatePrices())

	negativo := ok
	negativo.CostPrice = d("-1")
	assert.Error(t, negativo.ValidatePrices())
}

func TestAccountStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	a := entity.Account{Outstanding: decimal.NewFromInt(50), DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, entity.AccountStatusPending, a.Status(now))

	a.DueDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, entity.AccountStatusOverdue, a.Status(now))

	a.Outstanding = decimal.Zero
	assert.True(t, a.Settled())
	assert.Equal(t, entity.AccountStatusPaid, a.Status(now))
}

func TestLinesTotal(t *testing.T) {
	lines := []entity.DetailLine{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("35.50")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("120")},
	}
	total := entity.LinesTotal(lines)
	assert.True(t, decimal.RequireFromString("191").Equal(total))
	assert.True(t, decimal.RequireFromString("71").Equal(lines[0].Subtotal))
}
