package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/javimendezpy/control-emails/internal/config"
	"github.com/javimendezpy/control-emails/internal/domain"
)

// Writer publishes daily station outcomes to a Kafka topic so downstream
// alerting can react to missing reports. It implements pipeline.OutcomePublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured outcome topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaOutcomeTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishOutcomes serializes and publishes one day's outcomes in a single
// WriteMessages call. Keys are "station|date" so replays of the same day
// compact cleanly.
func (w *Writer) PublishOutcomes(ctx context.Context, outcomes []domain.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(outcomes))
	for i := range outcomes {
		msg, err := serializeToMessage(outcomes[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Outcome into a Kafka message.
func serializeToMessage(out domain.Outcome) (kafkago.Message, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize outcome: %w", err)
	}
	received := "0"
	if out.Received {
		received = "1"
	}
	return kafkago.Message{
		Key:   []byte(out.Station + "|" + out.Date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "received", Value: []byte(received)},
			{Key: "processed_at", Value: []byte(out.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
