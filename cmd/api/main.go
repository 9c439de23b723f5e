package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruit_portal_backend/internal/audit"
	"recruit_portal_backend/internal/auth"
	authrepo "recruit_portal_backend/internal/auth/repository"
	"recruit_portal_backend/internal/auth/session"
	"recruit_portal_backend/internal/calls"
	"recruit_portal_backend/internal/campaigns"
	"recruit_portal_backend/internal/candidates"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/dashboard"
	"recruit_portal_backend/internal/dnc"
	"recruit_portal_backend/internal/email"
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/internal/http/router"
	"recruit_portal_backend/internal/notification"
	"recruit_portal_backend/internal/scheduler"
	"recruit_portal_backend/internal/settings"
	"recruit_portal_backend/internal/storage"
	"recruit_portal_backend/internal/vacancies"
	"recruit_portal_backend/internal/webhooks"
	"recruit_portal_backend/migrations"
	"recruit_portal_backend/platform/config"
	"recruit_portal_backend/platform/db"
	"recruit_portal_backend/platform/logger"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(cfg.DatabaseURL, migrations.Files)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sessions := initSessionStore(cfg, log)

	dispatchClient, closeDispatch := initDispatchClient(cfg, log)
	if closeDispatch != nil {
		defer closeDispatch()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Object storage for candidate CV uploads (MinIO)
	var cvStore storage.CVStore
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure CV bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		cvStore = minioSvc
		log.Info("storage service initialized", "bucket", cfg.MinioBucketCandidateCVs)
	} else {
		log.Warn("MinIO not configured; CV uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, sessions, eventBus, log, val)
	vacanciesModule := vacancies.NewModule(pool, eventBus, val)
	candidatesModule := candidates.NewModule(pool, cvStore, eventBus, val, cfg.GetPhoneDefaultRegion())
	callsModule := calls.NewModule(pool, eventBus, val)
	settingsModule := settings.NewModule(pool)
	dncModule := dnc.NewModule(pool, eventBus, val, cfg.GetPhoneDefaultRegion())

	campaignsModule := campaigns.NewModule(
		pool,
		callsModule.Repository(),
		candrepo.New(pool),
		dncModule.Service(),
		settingsModule.Service(),
		dispatchClient,
		cfg,
		eventBus,
		log,
		val,
	)

	webhooksModule := webhooks.NewModule(pool, callsModule.Repository(), campaignsModule.Repository(),
		cfg.GetWebhookSharedToken(), eventBus, log)
	dashboardModule := dashboard.NewModule(pool, cfg)

	// Event subscribers (not HTTP-facing)
	auditModule := audit.NewModule(pool, log)
	auditModule.RegisterHandlers(eventBus)

	notificationModule := notification.NewModule(sender, authrepo.New(pool), log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewHealthChecker(pool),
		Sessions: authModule.Service(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			vacanciesModule,
			candidatesModule,
			campaignsModule,
			callsModule,
			dncModule,
			settingsModule,
			webhooksModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSessionStore picks Redis-backed sessions when Redis is configured and
// falls back to the in-process store otherwise.
func initSessionStore(cfg config.SessionConfig, log *logger.Logger) session.Store {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; sessions are in-memory and reset on restart")
		return session.NewMemoryStore(cfg.GetSessionTTL())
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; falling back to in-memory sessions", "error", err)
		return session.NewMemoryStore(cfg.GetSessionTTL())
	}

	return session.NewRedisStore(redis.NewClient(opt), cfg.GetSessionTTL())
}

// initDispatchClient creates the asynq dispatch client. Without Redis the API
// still serves mock-mode launches; live dispatch enqueues then fail cleanly.
func initDispatchClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; live campaign dispatch disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize dispatch client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
