package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/opme-consignado/docs"
	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/application/dto"
	"github.com/jhoicas/opme-consignado/internal/application/nfesync"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/lock"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/maino"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/nfe"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/postgres"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/opme-consignado/internal/interfaces/http"
	"github.com/jhoicas/opme-consignado/pkg/config"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

// @title        OPME Consignado API
// @version      1.0
// @description  Saldo de estoque consignado OPME a partir de NF-e.
// @BasePath     /
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	movementRepo := postgres.NewMovementRepository(pool)

	ingestUC := consignment.NewIngestNFeUseCase(txRunner, nfe.NewParser(), log)
	balanceUC := consignment.NewBalanceUseCase(movementRepo)
	reportUC := consignment.NewReportUseCase(balanceUC, report.NewGenerator())

	// Sincronización con Maino: solo con credenciales configuradas.
	var orch *nfesync.Orchestrator
	if cfg.Maino.Enabled() {
		client := maino.NewClient(maino.Config{
			BaseURL:    cfg.Maino.BaseURL,
			APIKey:     cfg.Maino.APIKey,
			Timeout:    cfg.Maino.Timeout(),
			MaxRetries: cfg.Maino.MaxRetries,
		}, log)

		opts := []nfesync.Option{}
		if cfg.Redis.Addr != "" {
			rdb, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			defer rdb.Close()
			opts = append(opts, nfesync.WithLocker(lock.NewRedisLocker(rdb), cfg.Sync.LockTTL()))
		} else {
			log.Warn().Msg("REDIS_ADDR vacío: sync sin lock distribuido")
		}
		orch = nfesync.NewOrchestrator(client, ingestUC, log, opts...)

		if cfg.Sync.CronEnabled {
			go orch.RunPeriodic(ctx, cfg.Sync.Interval(), cfg.Sync.DefaultDays)
		}
	} else {
		log.Warn().Msg("MAINO_API_KEY vacío: sincronización desactivada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Minute * 5, // /maino/sync puede tardar con ventanas largas
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "OPME Consignado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if err := pool.Ping(c.Context()); err != nil {
			status = "degraded"
		}
		return c.JSON(dto.HealthResponse{Status: status, Service: cfg.App.Name, MainoEnabled: orch != nil})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestUC:        ingestUC,
		BalanceUC:       balanceUC,
		ReportUC:        reportUC,
		SyncOrch:        orch,
		SyncDefaultDays: cfg.Sync.DefaultDays,
		Logger:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
