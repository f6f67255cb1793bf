// Command producer enqueues texts for the analysis worker. Each non-empty
// input line becomes one analysis request.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/clients/kafka_client"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/utils"
)

func main() {
	file := flag.String("file", "", "read texts from this file instead of stdin, one per line")
	flag.Parse()

	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var in io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			slog.Error("[Producer] Failed to open input", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	kcfg := kafka_client.NewKafkaConfig(cfg.Kafka)
	producer, err := kafka_client.NewProducer(kcfg)
	if err != nil {
		slog.Error("[Producer] Kafka init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer producer.Close()

	sent := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		req := models.AnalysisRequest{RequestID: uuid.NewString(), Text: text}
		payload, err := utils.SerializeToJSON(req)
		if err != nil {
			continue
		}
		if err := producer.Publish(ctx, kcfg.RequestTopic, []byte(req.RequestID), payload); err != nil {
			slog.Error("[Producer] Failed to publish request",
				slog.String("request_id", req.RequestID),
				slog.String("error", err.Error()))
			continue
		}
		fmt.Println(req.RequestID)
		sent++
	}
	if err := scanner.Err(); err != nil {
		slog.Error("[Producer] Failed to read input", slog.String("error", err.Error()))
	}

	slog.Info("[Producer] Done", slog.Int("published", sent), slog.String("topic", kcfg.RequestTopic))
}
