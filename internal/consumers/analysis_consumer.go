package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/utils"
)

const publishRetries = 3

type MessageIterator interface {
	Next() (*kafka.Message, error)
}

type OffsetCommitter interface {
	CommitOffsets(offsets []kafka.TopicPartition) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Analyzer interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

type AnalysisConsumerConfig struct {
	ResultsTopic string
	BatchSize    int
	BatchTimeout time.Duration
}

// AnalysisConsumer reads analysis requests, buffers the responses and
// publishes them in batches. Offsets are committed only after the batch
// holding their responses has been published.
type AnalysisConsumer struct {
	iterator  MessageIterator
	committer OffsetCommitter
	publisher Publisher
	analyzer  Analyzer
	cfg       AnalysisConsumerConfig

	buffer  *utils.BatchBuffer[models.AnalysisResponse]
	offsets *utils.OffsetTracker
	retry   time.Duration
}

func NewAnalysisConsumer(it MessageIterator, committer OffsetCommitter, pub Publisher, an Analyzer, cfg AnalysisConsumerConfig) *AnalysisConsumer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = utils.BATCH_SIZE
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = utils.BATCH_TIMEOUT
	}
	return &AnalysisConsumer{
		iterator:  it,
		committer: committer,
		publisher: pub,
		analyzer:  an,
		cfg:       cfg,
		buffer:    utils.NewBatchBuffer[models.AnalysisResponse](cfg.BatchSize),
		offsets:   utils.NewOffsetTracker(),
		retry:     2 * time.Second,
	}
}

// Run consumes until ctx is cancelled, then flushes whatever is buffered.
func (c *AnalysisConsumer) Run(ctx context.Context) {
	slog.Info("[AnalysisConsumer] Listening for messages...",
		slog.String("results_topic", c.cfg.ResultsTopic),
		slog.Int("batch_size", c.cfg.BatchSize))

	ticker := time.NewTicker(c.cfg.BatchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisConsumer] Stopping consumer...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			c.flush(shutdownCtx)
			cancel()
			return
		case <-ticker.C:
			c.flush(ctx)
		default:
			msg, err := c.iterator.Next()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					utils.HandleConsumerError(err)
				}
				continue
			}
			if msg == nil {
				continue
			}

			c.handle(ctx, msg)
			if c.buffer.Size() >= c.cfg.BatchSize {
				c.flush(ctx)
			}
		}
	}
}

func (c *AnalysisConsumer) handle(ctx context.Context, msg *kafka.Message) {
	defer c.offsets.Track(msg)

	var req models.AnalysisRequest
	if err := utils.DeserializeFromJSON(msg.Value, &req); err != nil {
		slog.Warn("[AnalysisConsumer] Skipping undecodable message",
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.String("offset", msg.TopicPartition.Offset.String()))
		return
	}

	if req.RequestID == "" {
		if len(msg.Key) > 0 {
			req.RequestID = string(msg.Key)
		} else {
			req.RequestID = uuid.NewString()
		}
	}

	resp := models.AnalysisResponse{RequestID: req.RequestID}
	result, err := c.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		slog.Warn("[AnalysisConsumer] Analysis failed",
			slog.String("request_id", req.RequestID),
			slog.String("error", err.Error()))
		resp.Error = err.Error()
	} else {
		resp.Result = result
	}

	c.buffer.Add(resp)
}

// flush publishes buffered responses and commits the offsets behind them.
// If publishing fails the responses are kept for the next attempt and no
// offsets are committed.
func (c *AnalysisConsumer) flush(ctx context.Context) {
	if c.buffer.HasData() {
		c.buffer.LogBatchProcessing(c.cfg.ResultsTopic)
	}
	batch := c.buffer.GetAndClear()

	if len(batch) > 0 {
		if err := c.publish(ctx, batch); err != nil {
			slog.Error("[AnalysisConsumer] Batch publishing failed, keeping batch",
				slog.Int("batch_size", len(batch)),
				slog.String("error", err.Error()))
			c.buffer.Add(batch...)
			return
		}
	}

	offsets := c.offsets.Drain()
	if len(offsets) == 0 {
		return
	}
	if err := c.committer.CommitOffsets(offsets); err != nil {
		slog.Warn("[AnalysisConsumer] Failed to commit offsets",
			slog.String("error", err.Error()))
	}
}

func (c *AnalysisConsumer) publish(ctx context.Context, batch []models.AnalysisResponse) error {
	payload, err := utils.SerializeToJSON(models.AnalysisBatchResponse(batch))
	if err != nil {
		return err
	}

	for i := 0; i < publishRetries; i++ {
		err = c.publisher.Publish(ctx, c.cfg.ResultsTopic, nil, payload)
		if err == nil {
			slog.Info("[AnalysisConsumer] Published results batch",
				slog.Int("batch_size", len(batch)))
			return nil
		}
		slog.Warn("[AnalysisConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if i < publishRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retry):
			}
		}
	}
	return err
}

// DecodeBatch parses a message from the results topic.
func DecodeBatch(data []byte) (models.AnalysisBatchResponse, error) {
	var batch models.AnalysisBatchResponse
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}
