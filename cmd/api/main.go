package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Dee126/DSAR-sub009/internal/api/http"
	"github.com/Dee126/DSAR-sub009/internal/api/http/handlers"
	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/config"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/events"
	"github.com/Dee126/DSAR-sub009/internal/observability"
	"github.com/Dee126/DSAR-sub009/internal/persistence"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	"github.com/Dee126/DSAR-sub009/internal/service"
	"github.com/Dee126/DSAR-sub009/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	slaDefaults := domain.TenantSlaConfig{
		BaseSlaDays:          cfg.Sla.DefaultBaseSlaDays,
		DueSoonThresholdDays: cfg.Sla.DefaultDueSoonThresholdDays,
		CalendarPolicy:       domain.CalendarPolicy(cfg.Sla.DefaultCalendarPolicy),
	}

	actorRepo := repository.NewActorRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	transitionRepo := repository.NewTransitionRepository(pool)
	holidayRepo := repository.NewCachedHolidayRepository(
		repository.NewHolidayRepository(pool), redis.Client, cfg.Redis.CacheTTL(), logger)
	tenantCfgRepo := repository.NewCachedTenantConfigRepository(
		repository.NewTenantConfigRepository(pool, slaDefaults), redis.Client, cfg.Redis.CacheTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, actorRepo)
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:       caseRepo,
		TransitionRepo: transitionRepo,
		HolidayRepo:    holidayRepo,
		TenantCfgRepo:  tenantCfgRepo,
		Dispatcher:     dispatcher,
	})
	reportService := service.NewReportService(caseRepo, holidayRepo, tenantCfgRepo)
	holidayService := service.NewHolidayService(holidayRepo, dispatcher)
	webhookService := service.NewWebhookService(dispatcher, logger, cfg.Webhook)
	worker.StartWebhookWorker(webhookService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), actorRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.App.Env == "production"})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Cases:          handlers.NewCasesHandler(caseService),
		Reports:        handlers.NewReportsHandler(reportService),
		Holidays:       handlers.NewHolidaysHandler(holidayService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
