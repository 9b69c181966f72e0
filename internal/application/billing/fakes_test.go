package billing

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// memDB base en memoria; RunBilling restaura el estado previo si fn falla.
type memDB struct {
	mu        sync.Mutex
	seq       int64
	products  map[int64]*entity.Product
	suppliers map[int64]*entity.Supplier
	clients   map[int64]*entity.Client
	movements []*entity.InventoryMovement
	purchases map[int64]*entity.Purchase
	sales     map[int64]*entity.Sale
	accounts  map[int64]*entity.Account
}

func newMemDB() *memDB {
	return &memDB{
		products:  map[int64]*entity.Product{},
		suppliers: map[int64]*entity.Supplier{},
		clients:   map[int64]*entity.Client{},
		purchases: map[int64]*entity.Purchase{},
		sales:     map[int64]*entity.Sale{},
		accounts:  map[int64]*entity.Account{},
	}
}

func (db *memDB) next() int64 {
	db.seq++
	return db.seq
}

type snapshot struct {
	seq       int64
	stock     map[int64]int
	movements int
	purchases map[int64]entity.Purchase
	sales     map[int64]entity.Sale
	accounts  map[int64]entity.Account
}

func (db *memDB) snapshot() snapshot {
	s := snapshot{
		seq:       db.seq,
		stock:     map[int64]int{},
		movements: len(db.movements),
		purchases: map[int64]entity.Purchase{},
		sales:     map[int64]entity.Sale{},
		accounts:  map[int64]entity.Account{},
	}
	for id, p := range db.products {
		s.stock[id] = p.Inventory.CurrentStock
	}
	for id, p := range db.purchases {
		s.purchases[id] = *p
	}
	for id, v := range db.sales {
		s.sales[id] = *v
	}
	for id, a := range db.accounts {
		c := *a
		c.Payments = append([]entity.Payment(nil), a.Payments...)
		s.accounts[id] = c
	}
	return s
}

func (db *memDB) restore(s snapshot) {
	db.seq = s.seq
	for id, v := range s.stock {
		db.products[id].Inventory.CurrentStock = v
	}
	db.movements = db.movements[:s.movements]
	db.purchases = map[int64]*entity.Purchase{}
	for id, p := range s.purchases {
		c := p
		db.purchases[id] = &c
	}
	db.sales = map[int64]*entity.Sale{}
	for id, v := range s.sales {
		c := v
		db.sales[id] = &c
	}
	db.accounts = map[int64]*entity.Account{}
	for id, a := range s.accounts {
		c := a
		db.accounts[id] = &c
	}
}

func (db *memDB) RunBilling(ctx context.Context, fn func(r TxRepos) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	snap := db.snapshot()
	r := TxRepos{
		Movements: memMovements{db},
		Stock:     memStock{db},
		Products:  memProducts{db: db},
		Purchases: memPurchases{db: db},
		Sales:     memSales{db: db},
		Accounts:  memAccounts{db},
	}
	if err := fn(r); err != nil {
		db.restore(snap)
		return err
	}
	return nil
}

// lock solo fuera de transacción
func (db *memDB) lock(outside bool) func() {
	if !outside {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}

type memProducts struct {
	repository.ProductRepository
	db      *memDB
	outside bool
}

func (r memProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	defer r.db.lock(r.outside)()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

type memStock struct{ db *memDB }

func (r memStock) GetForUpdate(ctx context.Context, productID int64) (*entity.Inventory, error) {
	p, ok := r.db.products[productID]
	if !ok {
		return nil, nil
	}
	inv := p.Inventory
	return &inv, nil
}

func (r memStock) SetStock(ctx context.Context, productID int64, current int) error {
	r.db.products[productID].Inventory.CurrentStock = current
	return nil
}

type memMovements struct{ db *memDB }

func (r memMovements) Create(ctx context.Context, m *entity.InventoryMovement) error {
	m.ID = r.db.next()
	m.CreatedAt = time.Now()
	r.db.movements = append(r.db.movements, m)
	return nil
}

func (r memMovements) ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.db.movements {
		if m.Source == source && m.ReferenceID != nil && *m.ReferenceID == referenceID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memMovements) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, int, error) {
	return r.db.movements, len(r.db.movements), nil
}

type memSuppliers struct {
	repository.SupplierRepository
	db *memDB
}

func (r memSuppliers) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	defer r.db.lock(true)()
	s, ok := r.db.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

type memClients struct {
	repository.ClientRepository
	db *memDB
}

func (r memClients) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	defer r.db.lock(true)()
	c, ok := r.db.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type memPurchases struct {
	db      *memDB
	outside bool
}

func (r memPurchases) Create(ctx context.Context, p *entity.Purchase) error {
	p.ID = r.db.next()
	p.Version, p.Estado = 1, true
	for i := range p.Lines {
		p.Lines[i].ID = r.db.next()
	}
	c := *p
	r.db.purchases[p.ID] = &c
	return nil
}

func (r memPurchases) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	defer r.db.lock(r.outside)()
	p, ok := r.db.purchases[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r memPurchases) GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r memPurchases) List(ctx context.Context, f repository.ListFilter) ([]*entity.Purchase, int, error) {
	defer r.db.lock(r.outside)()
	var out []*entity.Purchase
	for _, p := range r.db.purchases {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r memPurchases) Annul(ctx context.Context, id int64) error {
	p := r.db.purchases[id]
	p.Estado = false
	p.Version++
	return nil
}

type memSales struct {
	db      *memDB
	outside bool
}

func (r memSales) Create(ctx context.Context, s *entity.Sale) error {
	s.ID = r.db.next()
	s.Version, s.Estado = 1, true
	for i := range s.Lines {
		s.Lines[i].ID = r.db.next()
	}
	c := *s
	r.db.sales[s.ID] = &c
	return nil
}

func (r memSales) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	defer r.db.lock(r.outside)()
	s, ok := r.db.sales[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r memSales) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r memSales) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	defer r.db.lock(r.outside)()
	var out []*entity.Sale
	for _, s := range r.db.sales {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r memSales) Annul(ctx context.Context, id int64) error {
	s := r.db.sales[id]
	s.Estado = false
	s.Version++
	return nil
}

type memAccounts struct{ db *memDB }

func (r memAccounts) Create(ctx context.Context, a *entity.Account) error {
	a.ID = r.db.next()
	a.Version, a.Estado = 1, true
	c := *a
	r.db.accounts[a.ID] = &c
	return nil
}

func (r memAccounts) find(kind string, match func(*entity.Account) bool) *entity.Account {
	for _, a := range r.db.accounts {
		if a.Kind == kind && match(a) {
			c := *a
			c.Payments = append([]entity.Payment(nil), a.Payments...)
			return &c
		}
	}
	return nil
}

func (r memAccounts) GetByID(ctx context.Context, kind string, id int64) (*entity.Account, error) {
	return r.find(kind, func(a *entity.Account) bool { return a.ID == id }), nil
}

func (r memAccounts) GetForUpdate(ctx context.Context, kind string, id int64) (*entity.Account, error) {
	return r.GetByID(ctx, kind, id)
}

func (r memAccounts) GetBySource(ctx context.Context, kind string, sourceID int64) (*entity.Account, error) {
	return r.find(kind, func(a *entity.Account) bool { return a.SourceID == sourceID }), nil
}

func (r memAccounts) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	var out []*entity.Account
	for _, a := range r.db.accounts {
		if a.Kind == f.Kind && (f.Status == "" || a.Status(f.Today) == f.Status) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r memAccounts) AddPayment(ctx context.Context, p *entity.Payment) error {
	p.ID = r.db.next()
	a := r.db.accounts[p.AccountID]
	a.Payments = append(a.Payments, *p)
	return nil
}

func (r memAccounts) SetOutstanding(ctx context.Context, id int64, outstanding decimal.Decimal) error {
	a := r.db.accounts[id]
	a.Outstanding = outstanding
	a.Version++
	return nil
}

func (r memAccounts) Close(ctx context.Context, id int64) error {
	a := r.db.accounts[id]
	a.Estado = false
	a.Version++
	return nil
}

// lockedAccounts acceso fuera de transacción.
type lockedAccounts struct{ memAccounts }

func (r lockedAccounts) GetByID(ctx context.Context, kind string, id int64) (*entity.Account, error) {
	defer r.db.lock(true)()
	return r.memAccounts.GetByID(ctx, kind, id)
}

func (r lockedAccounts) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	defer r.db.lock(true)()
	return r.memAccounts.List(ctx, f)
}

func (db *memDB) addProduct(id int64, stock int, cost, min, max int64) {
	db.products[id] = &entity.Product{
		ID: id, Code: "RP-" + decimal.NewFromInt(id).String(), Description: "Repuesto",
		CostPrice:    decimal.NewFromInt(cost),
		MinSalePrice: decimal.NewFromInt(min),
		MaxSalePrice: decimal.NewFromInt(max),
		Estado:       true,
		Inventory:    entity.Inventory{ProductID: id, CurrentStock: stock, MinStock: 1},
	}
}

func (db *memDB) stock(id int64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.products[id].Inventory.CurrentStock
}

// inventoryUC motor de inventario real sobre los repos de la transacción.
func inventoryUC(db *memDB) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(nil, memProducts{db: db, outside: true}, memMovements{db})
}
