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

	"github.com/jhoicas/punto-venta-api/internal/application/cashier"
	"github.com/jhoicas/punto-venta-api/internal/application/catalog"
	"github.com/jhoicas/punto-venta-api/internal/application/checkout"
	"github.com/jhoicas/punto-venta-api/internal/application/consolidation"
	"github.com/jhoicas/punto-venta-api/internal/application/dashboard"
	"github.com/jhoicas/punto-venta-api/internal/application/production"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/redisbus"
	httpRouter "github.com/jhoicas/punto-venta-api/internal/interfaces/http"
	"github.com/jhoicas/punto-venta-api/pkg/config"
	"github.com/jhoicas/punto-venta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient := redisbus.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	supplyRepo := postgres.NewSupplyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	comboRepo := postgres.NewComboRepository(pool)
	extraRepo := postgres.NewExtraRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	cashierRepo := postgres.NewCashierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := redisbus.NewNotifier(redisClient)
	runLock := redisbus.NewRunLock(redisClient)
	keyring := ledger.NewKeyring()

	settleOrderUC := checkout.NewSettleOrderUseCase(txRunner, cashierRepo, notifier, keyring, log)
	adjustStockUC := production.NewAdjustCompositeUseCase(txRunner, stockRepo, keyring)
	reversalUC := production.NewReversalUseCase(txRunner, stockRepo, keyring)
	consolidateUC := consolidation.NewConsolidateUseCase(orderRepo, saleRepo, productRepo, comboRepo, runLock, log)
	reportUC := dashboard.NewReportUseCase(saleRepo)
	cashierUC := cashier.NewUseCase(cashierRepo, notifier, log)
	menuUC := catalog.NewMenuUseCase(productRepo, comboRepo, supplyRepo, extraRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SettleOrder: settleOrderUC,
		Consolidate: consolidateUC,
		Report:      reportUC,
		AdjustStock: adjustStockUC,
		Reversal:    reversalUC,
		CashierUC:   cashierUC,
		MenuUC:      menuUC,
		JWTSecret:   cfg.JWT.Secret,
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
