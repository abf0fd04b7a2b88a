package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestionpro/stock-ledger-api/internal/application/billing"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/application/production"
	"github.com/gestionpro/stock-ledger-api/internal/application/receiving"
	"github.com/gestionpro/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestionpro/stock-ledger-api/internal/interfaces/http"
	"github.com/gestionpro/stock-ledger-api/pkg/config"
	"github.com/gestionpro/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), "migrations"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.PoolRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewLedger(txRunner, repos.Movements, repos.Stock, repos.Products, repos.Warehouses)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, ledger, repos.Partners, repos.Products, repos.Warehouses, repos.Invoices)
	receiptUC := receiving.NewGoodsReceiptUseCase(txRunner, ledger, repos.Partners, repos.Products, repos.Warehouses, repos.GoodsReceipts)
	productionUC := production.NewProductionUseCase(txRunner, ledger, repos.Recipes, repos.Warehouses, repos.ProductionOrders)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.Metrics.Enabled {
		metrics := httpRouter.NewMetrics()
		app.Use(metrics.Middleware())
		app.Get(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:       ledger,
		InvoiceUC:    invoiceUC,
		ReceiptUC:    receiptUC,
		ProductionUC: productionUC,
		JWTSecret:    cfg.JWT.Secret,
	})

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
