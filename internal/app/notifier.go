package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VivekRai08/Jain-Foam-website/internal/config"
	"github.com/VivekRai08/Jain-Foam-website/internal/event"
	"github.com/VivekRai08/Jain-Foam-website/pkg/health"
	pkgkafka "github.com/VivekRai08/Jain-Foam-website/pkg/kafka"
	"github.com/VivekRai08/Jain-Foam-website/pkg/middleware"
)

// NotifierServiceName identifies the notification worker.
const NotifierServiceName = "inquiry-notifier"

// dedupWindow is how long delivered event ids are remembered.
const dedupWindow = 24 * time.Hour

// Notifier consumes inquiry.submitted events and emails the business.
type Notifier struct {
	logger     *slog.Logger
	consumer   *pkgkafka.Consumer
	httpServer *http.Server
}

// NewNotifier wires the Kafka consumer, idempotency guard and email
// transport.
func NewNotifier(cfg *config.Config, logger *slog.Logger) (*Notifier, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required for the notifier")
	}

	consumerHandler := event.NewConsumerHandler(NewDeliverer(cfg, logger), logger)
	dedup := pkgkafka.NewMemoryIdempotencyStore(dedupWindow)

	groupID := cfg.KafkaConsumerGroup
	if groupID == "" {
		groupID = event.ConsumerGroupID
	}
	consumer := pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: groupID,
		Topic:   cfg.KafkaInquiryTopic,
	}, pkgkafka.IdempotentHandler(dedup, consumerHandler.Handle, logger), logger)

	healthHandler := health.NewHandler(NotifierServiceName)
	brokers := cfg.KafkaBrokers
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, brokers)
	})

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	return &Notifier{
		logger:   logger,
		consumer: consumer,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.NotifierHTTPPort),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Run consumes events and serves health endpoints until ctx is canceled.
func (n *Notifier) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		if err := n.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("kafka consumer: %w", err)
		}
	}()

	go func() {
		n.logger.Info("starting HTTP server", slog.String("addr", n.httpServer.Addr))
		if err := n.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		n.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := n.httpServer.Shutdown(shutdownCtx); err != nil {
		n.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	if err := n.consumer.Close(); err != nil {
		n.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
	}

	n.logger.Info("notifier shutdown complete")
	return runErr
}
