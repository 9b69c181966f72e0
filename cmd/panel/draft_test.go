package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/pkg/session"
)

func TestBorrador_AgregarSumaMismoProductoYPrecio(t *testing.T) {
	d := &saleDraft{PaymentType: "CONTADO"}
	require.NoError(t, d.addLine(7, 2, decimal.RequireFromString("10.50")))
	require.NoError(t, d.addLine(7, 1, decimal.RequireFromString("10.5")))
	require.NoError(t, d.addLine(7, 1, decimal.RequireFromString("12")))

	require.Len(t, d.Lines, 2)
	assert.Equal(t, 3, d.Lines[0].Quantity)
	assert.True(t, d.total().Equal(decimal.RequireFromString("43.50")))
}

func TestBorrador_AgregarRechazaInvalidos(t *testing.T) {
	d := &saleDraft{}
	assert.Error(t, d.addLine(0, 1, decimal.NewFromInt(1)))
	assert.Error(t, d.addLine(1, 0, decimal.NewFromInt(1)))
	assert.Error(t, d.addLine(1, 1, decimal.NewFromInt(-1)))
	assert.Empty(t, d.Lines)
}

func TestBorrador_CuerpoDeVenta(t *testing.T) {
	d := &saleDraft{PaymentType: "CONTADO"}
	_, err := d.request()
	assert.ErrorIs(t, err, errEmptyDraft)

	require.NoError(t, d.addLine(3, 1, decimal.NewFromInt(20)))
	_, err = d.request()
	assert.ErrorContains(t, err, "cliente")

	d.ClientID = 9
	d.PaymentType = "CREDITO"
	_, err = d.request()
	assert.ErrorContains(t, err, "vencimiento")

	d.DueDate = "2026-11-30"
	req, err := d.request()
	require.NoError(t, err)
	assert.Equal(t, int64(9), req["id_cliente"])
	assert.Equal(t, "2026-11-30T00:00:00Z", req["fecha_vencimiento"])
}

func TestBorrador_PersisteEntreEjecuciones(t *testing.T) {
	st := session.NewMemoryStorage()
	d, err := loadDraft(st)
	require.NoError(t, err)
	assert.Equal(t, "CONTADO", d.PaymentType)

	d.ClientID = 4
	require.NoError(t, d.addLine(1, 2, decimal.RequireFromString("5.25")))
	require.NoError(t, saveDraft(st, d))

	again, err := loadDraft(st)
	require.NoError(t, err)
	assert.Equal(t, int64(4), again.ClientID)
	require.Len(t, again.Lines, 1)
	assert.True(t, again.Lines[0].UnitPrice.Equal(decimal.RequireFromString("5.25")))

	assert.True(t, again.removeLine(1))
	assert.False(t, again.removeLine(1))
}

func TestPanel_VentaSinSesion(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), nil, nil)
	_, err := store.Hydrate()
	require.NoError(t, err)

	var out bytes.Buffer
	p := &panel{store: store, out: &out, pageSize: 10}
	err = p.run(context.Background(), []string{"venta", "ver"})
	assert.ErrorContains(t, err, "inicie sesión")
}

func TestLookupResource_NombresYBusqueda(t *testing.T) {
	r, err := lookupResource("Productos")
	require.NoError(t, err)
	assert.Equal(t, "productos", r.name)
	assert.Equal(t, []string{"OPT-1", "Bujía"}, r.searchFields(row{"codigo": "OPT-1", "descripcion": "Bujía", "id": 1.0}))

	_, err = lookupResource("facturas")
	assert.ErrorContains(t, err, "recurso desconocido")
}

func TestCell_Formato(t *testing.T) {
	assert.Equal(t, "-", cell(nil))
	assert.Equal(t, "activo", cell(true))
	assert.Equal(t, "12", cell(12.0))
	assert.Equal(t, "x", cell("x"))
}
