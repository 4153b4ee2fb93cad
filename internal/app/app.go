package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/VivekRai08/Jain-Foam-website/internal/config"
	"github.com/VivekRai08/Jain-Foam-website/internal/event"
	handler "github.com/VivekRai08/Jain-Foam-website/internal/handler/http"
	"github.com/VivekRai08/Jain-Foam-website/internal/notify"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository/memory"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository/postgres"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository/postgres/migrations"
	rediscache "github.com/VivekRai08/Jain-Foam-website/internal/repository/redis"
	"github.com/VivekRai08/Jain-Foam-website/internal/seed"
	"github.com/VivekRai08/Jain-Foam-website/internal/service"
	"github.com/VivekRai08/Jain-Foam-website/pkg/database"
	"github.com/VivekRai08/Jain-Foam-website/pkg/health"
	pkgkafka "github.com/VivekRai08/Jain-Foam-website/pkg/kafka"
	"github.com/VivekRai08/Jain-Foam-website/pkg/middleware"
	"github.com/VivekRai08/Jain-Foam-website/pkg/tracing"
)

// ServiceName identifies the site API in logs, metrics and traces.
const ServiceName = "site-api"

// App wires together all dependencies and runs the site API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	dispatcher     *notify.Dispatcher
	tracerShutdown tracing.ShutdownFunc
	handler        http.Handler
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	if err := a.init(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	tc := tracing.DefaultConfig(ServiceName)
	tc.Environment = cfg.Environment
	tc.OTLPEndpoint = cfg.OTELEndpoint
	tc.SampleRate = cfg.OTELSampleRate
	tc.Enabled = cfg.OTELEnabled
	shutdown, err := tracing.InitTracer(ctx, tc)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	healthHandler := health.NewHandler(ServiceName)

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	healthHandler.Register("store", store.Ping)

	// Seeding reads the store itself so a cache left by an earlier process
	// cannot make a fresh store look populated.
	if cfg.SeedCatalog {
		if err := seed.Load(ctx, service.NewCatalogService(store, store, logger), logger); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	var (
		products   repository.ProductRepository  = store
		categories repository.CategoryRepository = store
	)
	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		logger.Info("connected to Redis", slog.String("addr", client.Options().Addr))

		cache := rediscache.NewCatalogCache(store, store, client, cfg.CatalogCacheTTL, logger)
		if err := cache.Purge(ctx); err != nil {
			return fmt.Errorf("purge catalog cache: %w", err)
		}
		products, categories = cache, cache
		healthHandler.Register("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	catalog := service.NewCatalogService(products, categories, logger)

	var (
		publisher service.InquiryPublisher
		notifier  service.Notifier
	)
	switch cfg.NotifyMode {
	case config.NotifyInline:
		dispatcher, err := notify.NewDispatcher(NewDeliverer(cfg, logger), notify.DispatcherConfig{
			Workers:   cfg.NotifyWorkers,
			QueueSize: cfg.NotifyQueueSize,
		}, logger)
		if err != nil {
			return err
		}
		a.dispatcher = dispatcher
		notifier = dispatcher
	case config.NotifyKafka:
		pcfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		pcfg.Async = true
		a.producer = pkgkafka.NewProducer(pcfg, logger)
		publisher = event.NewProducer(a.producer, cfg.KafkaInquiryTopic, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaInquiryTopic),
		)
	}
	logger.Info("inquiry notifications configured",
		slog.String("mode", cfg.NotifyMode),
		slog.String("transport", cfg.EmailTransport),
	)

	inquiries := service.NewInquiryService(store, publisher, notifier, logger)

	a.handler = handler.NewRouter(handler.RouterConfig{
		ServiceName:       ServiceName,
		TracingEnabled:    cfg.OTELEnabled,
		CORS:              middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		CatalogMaxAge:     cfg.CatalogMaxAge,
		PprofEnabled:      cfg.PprofEnabled,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	}, catalog, inquiries, healthHandler, logger)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

// openStore connects the configured data store, running migrations for
// PostgreSQL.
func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	cfg, logger := a.cfg, a.logger

	if cfg.StoreDriver != config.StorePostgres {
		logger.Info("using in-memory store")
		return memory.NewStore(), nil
	}

	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, ServiceName); err != nil {
		logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
	}

	return postgres.NewStore(pool), nil
}

// Handler returns the HTTP handler of the API.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run starts the HTTP server, then blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

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
		a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. Queued notifications are sent
// before it returns.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) close() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
}
