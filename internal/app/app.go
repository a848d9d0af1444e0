package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prakhar2b/sm-dryfruto/internal/admin"
	"github.com/prakhar2b/sm-dryfruto/internal/backend"
	"github.com/prakhar2b/sm-dryfruto/internal/catalog"
	"github.com/prakhar2b/sm-dryfruto/internal/config"
	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	handler "github.com/prakhar2b/sm-dryfruto/internal/handler/http"
	"github.com/prakhar2b/sm-dryfruto/internal/inquiry"
	"github.com/prakhar2b/sm-dryfruto/pkg/database"
	"github.com/prakhar2b/sm-dryfruto/pkg/health"
	pkgkafka "github.com/prakhar2b/sm-dryfruto/pkg/kafka"
	"github.com/prakhar2b/sm-dryfruto/pkg/middleware"
	"github.com/prakhar2b/sm-dryfruto/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	store          *content.Store
	publisher      event.Publisher
	consumer       *pkgkafka.Consumer
	redis          *redis.Client
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// Kafka and Redis are optional and only wired when configured.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	backendClient := backend.New(cfg.Backend(), logger)
	store := content.NewStore(backendClient, logger, content.WithLoadTimeout(cfg.ContentLoadTimeout))

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("content", func(context.Context) error {
		if !store.Loaded() {
			return errors.New("content not loaded yet")
		}
		return nil
	})
	healthHandler.RegisterNonCritical("backend", backendClient.Ping)

	// Kafka is optional; without it content changes stay local.
	var (
		publisher event.Publisher = event.NoopPublisher{}
		consumer  *pkgkafka.Consumer
	)
	if cfg.KafkaEnabled() {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewKafkaPublisher(producer, cfg.ReplicaID, logger)
		consumer = event.NewContentConsumer(event.ConsumerConfig{
			Brokers:     cfg.KafkaBrokers,
			GroupPrefix: cfg.KafkaGroupPrefix,
			ReplicaID:   cfg.ReplicaID,
		}, store, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka enabled",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("replica_id", cfg.ReplicaID),
		)
	}

	// Redis backs the submission guard across replicas.
	var (
		guard       inquiry.Guard = inquiry.NewMemoryGuard(cfg.SubmissionGuardTTL)
		redisClient *redis.Client
	)
	if cfg.RedisEnabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			_ = publisher.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		guard = inquiry.NewRedisGuard(redisClient, cfg.SubmissionGuardTTL)
		healthHandler.RegisterNonCritical("redis", database.RedisHealthCheck(redisClient))
		logger.Info("connected to Redis", slog.String("addr", cfg.Redis.Addr()))
	}

	adminService := admin.NewService(backendClient, store, publisher, logger)
	inquiryService := inquiry.NewService(backendClient, guard, store, publisher, logger)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	router := handler.NewRouter(bgCtx, handler.RouterConfig{
		Storefront: handler.NewStorefrontHandler(store, catalog.PriceRange{Min: 0, Max: cfg.PriceRangeMax}, logger),
		BulkOrders: handler.NewBulkOrderHandler(inquiryService, logger),
		Admin:      adminService,
		Health:     healthHandler,
		RateLimit: middleware.RateLimitConfig{
			PerMinute: cfg.RateLimitPerMinute,
			Burst:     cfg.RateLimitBurst,
		},
		CORS: cfg.CORS,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		store:          store,
		publisher:      publisher,
		consumer:       consumer,
		redis:          redisClient,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		stopBackground: stopBackground,
	}, nil
}

// Run loads content, starts the HTTP server and the Kafka consumer, then
// blocks until the context is canceled. The server accepts requests while
// the first load is still running; readiness reports it until it commits.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		snap := a.store.Refresh(ctx)
		a.logger.Info("initial content load complete",
			slog.Any("counts", snap.Counts()),
			slog.Any("degraded", snap.Degraded),
		)
	}()

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(ctx); err != nil {
				a.logger.Error("kafka consumer error", slog.String("error", err.Error()))
			}
		}()
	}

	if a.cfg.ContentPollInterval > 0 {
		go a.poll(ctx, a.cfg.ContentPollInterval)
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// poll refreshes the store periodically so edits made directly in the
// backend show up without an admin action.
func (a *App) poll(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.store.Refresh(ctx)
		}
	}
}

// Shutdown gracefully stops the application in order:
// 1. HTTP server (drain in-flight requests)
// 2. Kafka consumer and producer
// 3. Redis
// 4. Tracer (flush pending spans)
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.stopBackground()

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if err := a.publisher.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
