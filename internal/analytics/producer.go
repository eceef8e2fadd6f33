package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventGameCreated  = "game_created"
	EventMoveMade     = "move_made"
	EventGameFinished = "game_finished"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the JSON body of every published message.
type Event struct {
	Name      string         `json:"event"`
	GameID    string         `json:"game_id"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Producer publishes game events to Kafka. A nil *Producer is valid and drops every event.
type Producer struct {
	logger *slog.Logger
	writer messageWriter
	now    func() time.Time
}

// NewProducer returns nil when no brokers or topic are configured.
func NewProducer(logger *slog.Logger, brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	return newProducer(logger, writer)
}

func newProducer(logger *slog.Logger, writer messageWriter) *Producer {
	return &Producer{
		logger: logger.With("component", "analytics"),
		writer: writer,
		now:    time.Now,
	}
}

// Publish sends the event keyed by game ID. Failures are logged, not returned.
func (that *Producer) Publish(ctx context.Context, name, gameID string, payload map[string]any) {
	if that == nil || that.writer == nil {
		return
	}

	log := that.logger.With("method", "Publish", "event", name, "game_id", gameID)

	data, err := json.Marshal(Event{
		Name:      name,
		GameID:    gameID,
		Payload:   payload,
		Timestamp: that.now().UTC(),
	})
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	if err = that.writer.WriteMessages(ctx, kafka.Message{Key: []byte(gameID), Value: data}); err != nil {
		log.Error("kafka publish failed", "error", err)
	}
}

func (that *Producer) Close() error {
	if that == nil || that.writer == nil {
		return nil
	}

	if err := that.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
