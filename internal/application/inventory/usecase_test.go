package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// memStore inventario en memoria con semántica de transacción: los cambios se aplican solo si fn no falla.
type memStore struct {
	mu        sync.Mutex
	products  map[int64]*entity.Product
	movements []*entity.InventoryMovement
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[int64]*entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

type memProducts struct {
	repository.ProductRepository
	s *memStore
}

func (r memProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r memProducts) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Estado && p.Inventory.LowStock() {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

type txStock struct {
	s       *memStore
	pending map[int64]int
}

func (t *txStock) GetForUpdate(ctx context.Context, productID int64) (*entity.Inventory, error) {
	p, ok := t.s.products[productID]
	if !ok {
		return nil, nil
	}
	inv := p.Inventory
	if v, ok := t.pending[productID]; ok {
		inv.CurrentStock = v
	}
	return &inv, nil
}

func (t *txStock) SetStock(ctx context.Context, productID int64, current int) error {
	t.pending[productID] = current
	return nil
}

type txMovements struct {
	repository.InventoryMovementRepository
	pending []*entity.InventoryMovement
}

func (t *txMovements) Create(ctx context.Context, m *entity.InventoryMovement) error {
	m.ID = int64(len(t.pending) + 1)
	m.CreatedAt = time.Now()
	t.pending = append(t.pending, m)
	return nil
}

type memRunner struct{ s *memStore }

func (r memRunner) Run(ctx context.Context, fn func(TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stock := &txStock{s: r.s, pending: map[int64]int{}}
	movs := &txMovements{}
	if err := fn(TxRepos{Movements: movs, Stock: stock, Products: memProducts{s: r.s}}); err != nil {
		return err
	}
	for id, v := range stock.pending {
		r.s.products[id].Inventory.CurrentStock = v
	}
	r.s.movements = append(r.s.movements, movs.pending...)
	return nil
}

type memMovementList struct {
	repository.InventoryMovementRepository
	s *memStore
	f repository.MovementFilter
}

func (m *memMovementList) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, int, error) {
	m.f = f
	return m.s.movements, len(m.s.movements), nil
}

func product(id int64, stock, min int) *entity.Product {
	return &entity.Product{
		ID: id, Code: "P-00" + string(rune('0'+id)), Description: "Pastilla de freno",
		CostPrice:    decimal.NewFromInt(40),
		MinSalePrice: decimal.NewFromInt(60),
		MaxSalePrice: decimal.NewFromInt(80),
		Estado:       true,
		Inventory:    entity.Inventory{ProductID: id, CurrentStock: stock, MinStock: min},
	}
}

func newUseCase(s *memStore) (*RegisterMovementUseCase, *memMovementList) {
	list := &memMovementList{s: s}
	return NewRegisterMovementUseCase(memRunner{s: s}, memProducts{s: s}, list), list
}

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	s := newMemStore(product(1, 5, 2))
	uc, _ := newUseCase(s)
	uid := int64(9)

	in, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		UserID: &uid, ProductID: 1, Type: entity.MovementTypeIN, Quantity: 10, Reason: "conteo",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, in.StockBefore)
	assert.Equal(t, 15, in.StockAfter)
	assert.Equal(t, entity.MovementSourceManual, in.Source)

	out, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		ProductID: 1, Type: entity.MovementTypeOUT, Quantity: 15, Reason: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.StockAfter)
	assert.Equal(t, 0, s.products[1].Inventory.CurrentStock)
	assert.Len(t, s.movements, 2)
}

func TestRegisterMovement_StockInsuficienteNoModifica(t *testing.T) {
	s := newMemStore(product(1, 3, 2))
	uc, _ := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		ProductID: 1, Type: entity.MovementTypeOUT, Quantity: 4, Reason: "venta mostrador",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, s.products[1].Inventory.CurrentStock)
	assert.Empty(t, s.movements)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	inactive := product(2, 3, 1)
	inactive.Estado = false
	s := newMemStore(product(1, 3, 2), inactive)
	uc, _ := newUseCase(s)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    MovementInputDTO
		field string
	}{
		{"tipo inválido", MovementInputDTO{ProductID: 1, Type: "AJUSTE", Quantity: 1}, "tipo"},
		{"cantidad cero", MovementInputDTO{ProductID: 1, Type: entity.MovementTypeIN}, "cantidad"},
		{"producto inactivo", MovementInputDTO{ProductID: 2, Type: entity.MovementTypeIN, Quantity: 1}, "id_producto"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.in)
			var fe *domain.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.field, fe.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.RegisterMovement(ctx, MovementInputDTO{ProductID: 99, Type: entity.MovementTypeIN, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovementFromRequest(t *testing.T) {
	s := newMemStore(product(1, 0, 2))
	uc, list := newUseCase(s)
	uid := int64(4)

	res, err := uc.RegisterMovementFromRequest(context.Background(), &uid, dto.RegisterMovementRequest{
		ProductID: 1, Type: entity.MovementTypeIN, Quantity: 6, Reason: "stock inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.StockAfter)
	assert.Equal(t, &uid, res.UserID)

	pid := int64(1)
	page, err := uc.ListMovements(context.Background(), repository.MovementFilter{ProductID: &pid, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Page.Total)
	assert.Equal(t, &pid, list.f.ProductID)
}

func TestRegisterMovement_ConcurrentesNoPierdenUnidades(t *testing.T) {
	s := newMemStore(product(1, 100, 2))
	uc, _ := newUseCase(s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.RegisterMovement(context.Background(), MovementInputDTO{
				ProductID: 1, Type: entity.MovementTypeOUT, Quantity: 5, Reason: "venta",
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.products[1].Inventory.CurrentStock)
	assert.Len(t, s.movements, 20)
}
