package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/clients"
	"github.com/spacesedan/sentilens/internal/clients/kafka_client"
	"github.com/spacesedan/sentilens/internal/consumers"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/monitoring"
)

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := clients.NewPipeline(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to build analysis pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pipeline.Close()

	translatorHealthy := &atomic.Bool{}
	translatorHealthy.Store(true)
	go monitoring.MonitorTranslator(ctx, pipeline.Translator, translatorHealthy, cfg.HealthcheckInterval)

	kcfg := kafka_client.NewKafkaConfig(cfg.Kafka)

	var producer *kafka_client.KafkaProducer
	for {
		producer, err = kafka_client.NewProducer(kcfg)
		if err == nil {
			break
		}
		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer producer.Close()

	consumer, err := kafka_client.NewConsumer(kcfg)
	if err != nil {
		slog.Error("[Main] Failed to start consumer", slog.String("error", err.Error()))
		return
	}
	defer consumer.Close()

	worker := consumers.NewAnalysisConsumer(
		kafka_client.NewKafkaMessageIterator(ctx, consumer),
		kafka_client.NewCommitHandler(context.Background(), consumer),
		producer,
		pipeline.Analyzer,
		consumers.AnalysisConsumerConfig{
			ResultsTopic: kcfg.ResultsTopic,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		},
	)
	worker.Run(ctx)
	slog.Info("[Main] Worker stopped")
}
