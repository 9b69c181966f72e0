package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

type memCategories struct {
	repository.CategoryRepository
	items map[int64]*entity.Category
}

func (m *memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return m.items[id], nil
}

type memSubcategories struct {
	repository.SubcategoryRepository
	items map[int64]*entity.Subcategory
}

func (m *memSubcategories) GetByID(_ context.Context, id int64) (*entity.Subcategory, error) {
	return m.items[id], nil
}

func (m *memSubcategories) ListByCategory(_ context.Context, categoryID int64) ([]*entity.Subcategory, error) {
	out := make([]*entity.Subcategory, 0)
	for _, s := range m.items {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubcategories) Create(_ context.Context, s *entity.Subcategory) error {
	s.ID = int64(len(m.items) + 1)
	s.Version = 1
	m.items[s.ID] = s
	return nil
}

type memBrands struct {
	repository.BrandRepository
	items map[int64]*entity.Brand
}

func (m *memBrands) GetByID(_ context.Context, id int64) (*entity.Brand, error) {
	return m.items[id], nil
}

// memProducts productos con su inventario; también sirve de StockRepository.
type memProducts struct {
	repository.ProductRepository
	mu     sync.Mutex
	items  map[int64]*entity.Product
	nextID int64
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[int64]*entity.Product{}}
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.nextID++
	p.ID = m.nextID
	p.Version = 1
	p.Inventory.ProductID = p.ID
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cur := m.items[p.ID]
	p.Version++
	p.Inventory.CurrentStock = cur.Inventory.CurrentStock
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

type memStock struct {
	repository.StockRepository
	products *memProducts
}

func (s *memStock) GetForUpdate(_ context.Context, productID int64) (*entity.Inventory, error) {
	p, ok := s.products.items[productID]
	if !ok {
		return nil, nil
	}
	inv := p.Inventory
	return &inv, nil
}

func (s *memStock) SetStock(_ context.Context, productID int64, current int) error {
	s.products.items[productID].Inventory.CurrentStock = current
	return nil
}

type memMovements struct {
	repository.InventoryMovementRepository
	created []*entity.InventoryMovement
}

func (m *memMovements) Create(_ context.Context, mov *entity.InventoryMovement) error {
	mov.ID = int64(len(m.created) + 1)
	m.created = append(m.created, mov)
	return nil
}

type memRunner struct {
	products  *memProducts
	movements *memMovements
}

func (r *memRunner) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	return fn(inventory.TxRepos{Movements: r.movements, Stock: &memStock{products: r.products}, Products: r.products})
}

type memRepresentatives struct {
	repository.RepresentativeRepository
	items map[int64]*entity.Representative
}

func (m *memRepresentatives) GetByID(_ context.Context, id int64) (*entity.Representative, error) {
	return m.items[id], nil
}

func (m *memRepresentatives) GetByDNI(_ context.Context, dni string) (*entity.Representative, error) {
	for _, r := range m.items {
		if r.DNI == dni {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRepresentatives) Create(_ context.Context, r *entity.Representative) error {
	r.ID = int64(len(m.items) + 1)
	m.items[r.ID] = r
	return nil
}

type memClients struct {
	repository.ClientRepository
	items map[int64]*entity.Client
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	c.ID = int64(len(m.items) + 1)
	c.Version = 1
	m.items[c.ID] = c
	return nil
}

func (m *memClients) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	return m.items[id], nil
}

type memSuppliers struct {
	repository.SupplierRepository
	items map[int64]*entity.Supplier
}

func (m *memSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	s.ID = int64(len(m.items) + 1)
	m.items[s.ID] = s
	return nil
}

func (m *memSuppliers) GetByRUC(_ context.Context, ruc string) (*entity.Supplier, error) {
	for _, s := range m.items {
		if s.RUC == ruc {
			return s, nil
		}
	}
	return nil, nil
}

type memUsers struct {
	repository.UserRepository
	items      map[int64]*entity.User
	setModules []int64
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return m.items[id], nil
}

func (m *memUsers) SetModules(_ context.Context, userID int64, moduleIDs []int64, _ *int64) (int64, error) {
	m.setModules = moduleIDs
	u := m.items[userID]
	u.Version++
	return u.Version, nil
}

func (m *memUsers) SoftDelete(_ context.Context, id int64, _ *int64) error {
	m.items[id].Estado = false
	return nil
}

type memModules struct {
	repository.ModuleRepository
	items []*entity.Module
}

func (m *memModules) List(_ context.Context) ([]*entity.Module, error) {
	return m.items, nil
}

func (m *memModules) GetBySlugs(_ context.Context, slugs []string) ([]*entity.Module, error) {
	out := make([]*entity.Module, 0)
	for _, mod := range m.items {
		for _, s := range slugs {
			if mod.Slug == s {
				out = append(out, mod)
			}
		}
	}
	return out, nil
}
