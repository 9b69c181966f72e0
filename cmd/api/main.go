package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/autopartes-api/internal/application/analytics"
	"github.com/jhoicas/autopartes-api/internal/application/auth"
	"github.com/jhoicas/autopartes-api/internal/application/billing"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/autopartes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/autopartes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/autopartes-api/internal/interfaces/http"
	"github.com/jhoicas/autopartes-api/pkg/config"
	"github.com/jhoicas/autopartes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.MigrationsPath != "" {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	workerRepo := postgres.NewWorkerRepository(pool)
	representativeRepo := postgres.NewRepresentativeRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(productRepo, dashboardRepo)

	authUC := auth.NewAuthUseCase(userRepo, workerRepo, moduleRepo, auth.JWTConfig{
		Secret:       cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		RefreshHours: cfg.JWT.RefreshHours,
		Issuer:       cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("username", cfg.Bootstrap.AdminUsername).Msg("administrador inicial creado")
	}

	// PDF: comprobante de venta con los datos del negocio
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Business{
		Name:    cfg.Business.Name,
		RUC:     cfg.Business.RUC,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
	})

	loginLimiter, err := httpRouter.NewLoginLimiter(cfg.RateLimit.Login)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.RateLimit.Login).Msg("RATE_LIMIT_LOGIN inválido")
	}

	deps := httpRouter.RouterDeps{
		AuthUC:           authUC,
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		SubcategoryUC:    usecase.NewSubcategoryUseCase(subcategoryRepo, categoryRepo),
		BrandUC:          usecase.NewBrandUseCase(brandRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo, subcategoryRepo, brandRepo, txRunner, registerMovementUC),
		WorkerUC:         usecase.NewWorkerUseCase(workerRepo),
		ClientUC:         usecase.NewClientUseCase(clientRepo, representativeRepo),
		RepresentativeUC: usecase.NewRepresentativeUseCase(representativeRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo),
		UserUC:           usecase.NewUserUseCase(userRepo, moduleRepo),
		ModuleService:    usecase.NewModuleService(moduleRepo),
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		PurchaseUC:       billing.NewPurchaseUseCase(txRunner, registerMovementUC, supplierRepo, productRepo, purchaseRepo),
		SaleUC:           billing.NewSaleUseCase(txRunner, registerMovementUC, clientRepo, productRepo, saleRepo),
		AccountUC:        billing.NewAccountUseCase(txRunner, accountRepo),
		PDFUC:            billing.NewPDFUseCase(saleRepo, clientRepo, pdfGenerator),
		DashboardUC:      appanalytics.NewDashboardUseCase(dashboardRepo),
		JWTSecret:        cfg.JWT.Secret,
		SecureCookies:    cfg.App.Env == "production",
		LoginLimiter:     loginLimiter,
	}

	metrics := httpRouter.NewMetrics("autopartes")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, If-Match, X-Request-ID",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "Autopartes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
