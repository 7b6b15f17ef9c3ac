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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/infrastructure/cache"
	"github.com/jhoicas/Orders-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Orders-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Orders-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Orders-api/internal/interfaces/http"
	"github.com/jhoicas/Orders-api/pkg/config"
	"github.com/jhoicas/Orders-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Redis es opcional: sin REDIS_URL no hay idempotencia de POST /api/orders/.
	var (
		rdb         *redis.Client
		idempotency orders.IdempotencyStore
	)
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		idempotency = cache.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	}

	recorder := metrics.New()

	projectRepo := postgres.NewProjectRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	carrierRepo := postgres.NewCarrierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	createOrderUC := orders.NewCreateOrderUseCase(
		txRunner, projectRepo, materialRepo, inventoryRepo, carrierRepo, orderRepo,
		idempotency, recorder, log,
	)
	queryOrdersUC := orders.NewQueryOrdersUseCase(projectRepo, orderRepo)

	// PDF: hoja de alistamiento para bodega
	pickTicketUC := orders.NewPickTicketUseCase(
		projectRepo, orderRepo, materialRepo, warehouseRepo, infrapdf.NewMarotoPickTicketGenerator(),
	)

	checks := map[string]httpRouter.Pinger{"postgres": pool}
	if rdb != nil {
		checks["redis"] = httpRouter.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Orders API",
		}))
	}

	deps := httpRouter.RouterDeps{
		CreateOrder: createOrderUC,
		QueryOrders: queryOrdersUC,
		PickTicket:  pickTicketUC,
		Health:      httpRouter.NewHealthHandler(cfg.App.Name, checks),
		JWTSecret:   cfg.JWT.Secret,
		Debug:       cfg.App.Debug,
		Logger:      log,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = recorder.Handler()
	}
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
