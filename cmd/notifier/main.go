package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/VivekRai08/Jain-Foam-website/internal/app"
	"github.com/VivekRai08/Jain-Foam-website/internal/config"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.NewWithFile(app.NotifierServiceName, cfg.LogLevel, logger.FileConfig{Path: cfg.LogFile})
	log.Info("starting inquiry notifier",
		slog.String("environment", cfg.Environment),
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.String("topic", cfg.KafkaInquiryTopic),
		slog.String("transport", cfg.EmailTransport),
	)

	notifier, err := app.NewNotifier(cfg, log)
	if err != nil {
		log.Error("failed to initialize notifier", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := notifier.Run(ctx); err != nil {
		log.Error("notifier error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("inquiry notifier stopped")
}
