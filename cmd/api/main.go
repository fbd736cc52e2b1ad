package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counseling/internal/admin"
	"counseling/internal/appointment"
	"counseling/internal/availability"
	"counseling/internal/backend"
	"counseling/internal/booking"
	"counseling/internal/config"
	"counseling/internal/fixture"
	"counseling/internal/handler"
	"counseling/internal/logging"
	"counseling/internal/queue"
	"counseling/internal/session"
	"counseling/internal/store"
	"counseling/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func runHTTP(cfg config.App, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]func(context.Context) bool{}
	var redisClient *store.Redis
	if cfg.SessionBackend == "redis" || cfg.QueueBackend == "redis" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		checks["redis"] = redisClient.Healthy
	}

	var sessions session.Store
	switch cfg.SessionBackend {
	case "sqlite":
		s, err := session.OpenSQLite(cfg.SessionDBPath)
		if err != nil {
			return err
		}
		defer s.Close()
		sessions = s
	case "redis":
		sessions = session.NewRedisStore(redisClient.Client, "", cfg.AccessTTL)
	default:
		sessions = session.NewMemoryStore()
	}

	var wizards booking.SessionStore = booking.NewMemorySessionStore(booking.SessionTTL)
	if redisClient != nil && cfg.SessionBackend == "redis" {
		wizards = booking.NewRedisSessionStore(redisClient.Client, booking.SessionTTL)
	}

	var repo appointment.Repository = appointment.NewMemoryRepository(fixture.Appointments())
	if cfg.StoreBackend == "postgres" {
		pingCtx, stop := context.WithTimeout(ctx, 5*time.Second)
		db, err := store.NewDB(pingCtx, cfg.DatabaseURL)
		stop()
		if err != nil {
			return err
		}
		defer db.Close()
		pg := appointment.NewPostgresRepository(db.Client)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		if err := pg.Seed(ctx, fixture.Appointments()); err != nil {
			return err
		}
		repo = pg
		checks["db"] = db.Healthy
	}
	appts := appointment.NewService(repo)

	var client backend.Client
	if cfg.BackendURL != "" {
		hc := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout)
		client = hc
		checks["backend"] = func(ctx context.Context) bool { return hc.Health(ctx) == nil }
	} else {
		client = backend.NewMock(backend.Delays{Dashboard: cfg.MockDelay, Booking: cfg.MockDelay * 3 / 2}, appts)
	}

	book := availability.NewBook(fixture.TimeSlots)
	var base availability.Query = availability.NewSeeded(cfg.AvailabilitySeed)
	if cfg.AvailabilityMode == "slots" {
		base = &availability.FromSlots{Book: book}
	}
	free, err := availability.NewCached(base, cfg.AvailabilityCacheSize)
	if err != nil {
		return err
	}
	book.OnChange(free.Invalidate)

	var (
		q    queue.Queue
		feed admin.Feed
	)
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
		rf := admin.NewRedisFeed(redisClient.Client, "", cfg.ActivityFeedSize)
		if err := rf.Seed(ctx, admin.SeedEntries()); err != nil {
			logger.Warn("activity feed seed failed", zap.Error(err))
		}
		feed = rf
	} else {
		q = queue.NewInMemory(64)
		feed = admin.NewMemoryFeed(cfg.ActivityFeedSize, admin.SeedEntries())
		go func() {
			_ = worker.NewProcessor(feed, logger.Named("worker")).Run(ctx, q)
		}()
	}

	h := handler.New(handler.Deps{
		Config:       cfg,
		Log:          logger,
		Sessions:     sessions,
		Wizards:      wizards,
		Flow:         booking.NewFlow(fixture.Teachers(), free, client, q, logger.Named("booking")),
		Backend:      client,
		Availability: book,
		Free:         free,
		Appointments: appts,
		Users:        appointment.NewDirectory(fixture.Users()),
		Feed:         feed,
		Settings:     admin.NewSettingsStore(),
		Events:       q,
		Checks:       checks,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr),
			zap.String("sessions", cfg.SessionBackend), zap.String("store", cfg.StoreBackend), zap.String("queue", cfg.QueueBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
	return nil
}
