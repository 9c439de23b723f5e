package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruit_portal_backend/internal/audit"
	authrepo "recruit_portal_backend/internal/auth/repository"
	campaignsrepo "recruit_portal_backend/internal/campaigns/repository"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	dncrepo "recruit_portal_backend/internal/dnc/repository"
	dncservice "recruit_portal_backend/internal/dnc/service"
	"recruit_portal_backend/internal/email"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/notification"
	"recruit_portal_backend/internal/scheduler"
	"recruit_portal_backend/internal/telephony"
	vacrepo "recruit_portal_backend/internal/vacancies/repository"
	"recruit_portal_backend/platform/config"
	"recruit_portal_backend/platform/db"
	"recruit_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting dispatch worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// Worker-side event subscribers: completed campaigns still get audited
	// and mailed when the last call finishes on this process.
	auditModule := audit.NewModule(pool, log)
	auditModule.RegisterHandlers(eventBus)

	notificationModule := notification.NewModule(sender, authrepo.New(pool), log)
	notificationModule.RegisterHandlers(eventBus)

	if !cfg.IsVapiEnabled() {
		log.Warn("Vapi not configured; dispatched calls will record errors")
	}
	provider := telephony.NewVapiClient(cfg)

	dispatchClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize dispatch client", "error", err)
		panic("failed to initialize dispatch client: " + err.Error())
	}
	defer func() { _ = dispatchClient.Close() }()

	gate := dncservice.New(dncrepo.New(pool), eventBus, cfg.GetPhoneDefaultRegion())

	dispatcher := scheduler.NewDispatcher(
		campaignsrepo.New(pool),
		candrepo.New(pool),
		vacrepo.New(pool),
		gate,
		provider,
		dispatchClient,
		eventBus,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, dispatcher, log)
	if err != nil {
		log.Error("failed to initialize dispatch worker", "error", err)
		panic("failed to initialize dispatch worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
