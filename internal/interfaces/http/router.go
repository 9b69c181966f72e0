package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	appanalytics "github.com/jhoicas/autopartes-api/internal/application/analytics"
	"github.com/jhoicas/autopartes-api/internal/application/auth"
	"github.com/jhoicas/autopartes-api/internal/application/billing"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/application/usecase"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CategoryUC       *usecase.CategoryUseCase
	SubcategoryUC    *usecase.SubcategoryUseCase
	BrandUC          *usecase.BrandUseCase
	ProductUC        *usecase.ProductUseCase
	WorkerUC         *usecase.WorkerUseCase
	ClientUC         *usecase.ClientUseCase
	RepresentativeUC *usecase.RepresentativeUseCase
	SupplierUC       *usecase.SupplierUseCase
	UserUC           *usecase.UserUseCase
	ModuleService    *usecase.ModuleService
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	PurchaseUC       *billing.PurchaseUseCase
	SaleUC           *billing.SaleUseCase
	AccountUC        *billing.AccountUseCase
	PDFUC            *billing.PDFUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
	SecureCookies    bool
	LoginLimiter     *limiter.Limiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookies)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimit(deps.LoginLimiter), authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Put("/profile", requireAuth, authHandler.UpdateProfile)
	authGroup.Post("/register", requireAuth, RequireModule(permission.SlugUsuarios), authHandler.Register)

	// Rutas protegidas (Bearer o cookie access_token)
	protected := api.Group("/", requireAuth)

	// Catálogo
	categories := protected.Group("/categorias", RequireModule(permission.SlugCategorias))
	crudRoutes(categories, NewCategoryHandler(deps.CategoryUC))

	subHandler := NewSubcategoryHandler(deps.SubcategoryUC)
	subcategories := protected.Group("/subcategorias", RequireModule(permission.SlugCategorias))
	subcategories.Get("/categoria/:idCategoria", subHandler.ListByCategory)
	crudRoutes(subcategories, subHandler)

	brands := protected.Group("/marcas", RequireModule(permission.SlugMarcas))
	crudRoutes(brands, NewBrandHandler(deps.BrandUC))

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/productos", RequireModule(permission.SlugProductos))
	products.Get("/stock-bajo", productHandler.LowStock)
	crudRoutes(products, productHandler)

	// Terceros
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/proveedores", RequireModule(permission.SlugProveedores))
	suppliers.Get("/ruc/:ruc", supplierHandler.GetByRUC)
	crudRoutes(suppliers, supplierHandler)

	workers := protected.Group("/trabajadores", RequireModule(permission.SlugTrabajadores))
	crudRoutes(workers, NewWorkerHandler(deps.WorkerUC))

	clients := protected.Group("/clientes", RequireModule(permission.SlugClientes))
	crudRoutes(clients, NewClientHandler(deps.ClientUC))

	repHandler := NewRepresentativeHandler(deps.RepresentativeUC)
	representatives := protected.Group("/representantes", RequireModule(permission.SlugClientes))
	representatives.Get("/dni/:dni", repHandler.GetByDNI)
	crudRoutes(representatives, repHandler)

	// Compras y ventas
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := protected.Group("/compras", RequireModule(permission.SlugCompras))
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Delete("/:id", purchaseHandler.Annul)

	saleHandler := NewSaleHandler(deps.SaleUC, deps.PDFUC)
	sales := protected.Group("/ventas", RequireModule(permission.SlugVentas))
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id/pdf", saleHandler.DownloadPDF)
	sales.Get("/:id", saleHandler.Get)
	sales.Delete("/:id", saleHandler.Annul)

	accountRoutes(protected.Group("/cuentas-por-cobrar", RequireModule(permission.SlugCuentasCobrar)), NewReceivableHandler(deps.AccountUC))
	accountRoutes(protected.Group("/cuentas-por-pagar", RequireModule(permission.SlugCuentasPagar)), NewPayableHandler(deps.AccountUC))

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	inv := protected.Group("/inventario", RequireModule(permission.SlugInventario))
	inv.Get("/movimientos", inventoryHandler.ListMovements)
	inv.Post("/movimientos", inventoryHandler.RegisterMovement)
	inv.Get("/reposicion", inventoryHandler.Replenishment)

	// Usuarios y módulos
	userHandler := NewUserHandler(deps.UserUC, deps.ModuleService)
	protected.Get("/modulos", userHandler.ListModules)
	users := protected.Group("/usuarios", RequireModule(permission.SlugUsuarios))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/modulos", RequireAdmin(), userHandler.SetModules)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireModule(permission.SlugDashboard), dashboardHandler.GetSummary)
}

type crudHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func crudRoutes(r fiber.Router, h crudHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func accountRoutes(r fiber.Router, h *AccountHandler) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/:id/pagos", h.Pay)
}
