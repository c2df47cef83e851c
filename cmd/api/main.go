package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funnel_backend/internal/adapters/storage"
	"funnel_backend/internal/analytics"
	"funnel_backend/internal/appointments"
	"funnel_backend/internal/calendar"
	"funnel_backend/internal/email"
	"funnel_backend/internal/events"
	"funnel_backend/internal/googleauth"
	apphttp "funnel_backend/internal/http"
	"funnel_backend/internal/http/router"
	"funnel_backend/internal/leads"
	leadservice "funnel_backend/internal/leads/service"
	"funnel_backend/internal/ledger"
	"funnel_backend/internal/notification"
	"funnel_backend/internal/scheduler"
	"funnel_backend/platform/config"
	"funnel_backend/platform/db"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

const ledgerObjectKey = "exports/leads.xlsx"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "timezone", cfg.MeetingTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	pool := initDatabase(ctx, cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	storageSvc := initStorage(ctx, cfg, log)

	googleClient, err := googleauth.New(ctx, cfg, log)
	if err != nil {
		log.Warn("google integration disabled", "error", err)
		googleClient = nil
	}

	provider := initCalendar(ctx, cfg, googleClient, log)
	ledgerWriter, workbook := initLedger(ctx, cfg, googleClient, storageSvc, pool, log)

	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg, cfg.GetMeetingLocation())
	if !cfg.GetEmailEnabled() {
		log.Warn("email credentials not configured; booking emails disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.New(sender, reminderScheduler, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	analyticsClient := analytics.NewClient(cfg)
	if analyticsClient == nil {
		log.Warn("GA_MEASUREMENT_ID or GA_API_SECRET not configured; conversions not reported")
	}
	analytics.New(analyticsClient, log).RegisterHandlers(eventBus)

	val := validator.New()

	leadDeps := leadservice.Deps{
		Ledger: ledgerWriter,
		Bus:    eventBus,
		Log:    log,
	}
	if workbook != nil {
		leadDeps.Workbook = workbook
	}
	if pool != nil {
		leadDeps.Store = ledger.NewPostgres(pool)
	}
	if storageSvc != nil {
		leadDeps.Export = &leadservice.ExportLocation{
			Store:  storageSvc,
			Bucket: cfg.GetMinIOBucketLedger(),
			Key:    ledgerObjectKey,
		}
	}

	leadsModule := leads.NewModule(leadDeps, val)
	appointmentsModule := appointments.NewModule(provider, ledgerWriter, eventBus, cfg, val, log)
	authModule := googleauth.NewModule(googleClient, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			appointmentsModule,
			authModule,
		},
	}
	if pool != nil {
		app.Health = pool
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}

	// let in-flight notification and analytics handlers finish
	eventBus.Wait()
	log.Info("server stopped")
}

func initDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
	if !cfg.IsDatabaseEnabled() {
		log.Warn("DATABASE_URL not configured; leads are not stored in postgres")
		return nil
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		pool.Close()
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database connection established, migrations complete")
	return pool
}

func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; workbook is not mirrored")
		return nil
	}

	svc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinIOBucketLedger()
	if err := withRetry(ctx, log, "ensure ledger bucket", 5, 2*time.Second, func() error {
		return svc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "ledgerBucket", bucket)
	return svc
}

func initCalendar(ctx context.Context, cfg *config.Config, client *googleauth.Client, log *logger.Logger) calendar.Provider {
	if client == nil {
		log.Warn("calendar not configured; slots come from the fallback grid")
		return calendar.Offline{}
	}

	provider, err := calendar.NewGoogle(ctx, client.TokenSource(), cfg)
	if err != nil {
		log.Error("failed to initialize google calendar", "error", err)
		return calendar.Offline{}
	}
	if !client.Authorized() {
		log.Warn("google account not authorized yet; visit /api/auth/authorize")
	}
	log.Info("google calendar initialized", "calendarId", cfg.GetCalendarID())
	return provider
}

// initLedger assembles the sinks every lead is written to. The returned
// workbook is nil when the export directory cannot be created.
func initLedger(
	ctx context.Context,
	cfg *config.Config,
	client *googleauth.Client,
	storageSvc storage.StorageService,
	pool *pgxpool.Pool,
	log *logger.Logger,
) (*ledger.Writer, *ledger.Workbook) {
	var sinks []ledger.Sink

	workbook, err := ledger.NewWorkbook(cfg.GetExcelExportPath(), cfg.GetMeetingLocation())
	if err != nil {
		log.Error("excel export disabled", "error", err, "path", cfg.GetExcelExportPath())
		workbook = nil
	} else {
		if storageSvc != nil {
			workbook.WithMirror(&ledger.Mirror{
				Store:  storageSvc,
				Bucket: cfg.GetMinIOBucketLedger(),
				Key:    ledgerObjectKey,
			})
		}
		sinks = append(sinks, workbook)
	}

	if cfg.IsSheetsEnabled() && client != nil {
		sheets, err := ledger.NewSheets(ctx, cfg.GetGoogleSheetsID(), option.WithTokenSource(client.TokenSource()))
		if err != nil {
			log.Error("google sheets disabled", "error", err)
		} else {
			if err := sheets.EnsureHeaders(ctx); err != nil {
				// retried on the first append
				log.CollaboratorFailure("sheets", "ensure_headers", err)
			}
			sinks = append(sinks, sheets)
		}
	} else if cfg.IsSheetsEnabled() {
		log.Warn("GOOGLE_SHEETS_ID set but google is not configured; sheets sink disabled")
	}

	if pool != nil {
		sinks = append(sinks, ledger.NewPostgres(pool))
	}

	writer := ledger.NewWriter(log, sinks...)
	log.Info("lead ledger initialized", "sinks", writer.Sinks())
	return writer, workbook
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; appointment reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
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
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
