package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/draymaster/tachocompliance/shared/pkg/logger"
)

// Event represents a domain event
type Event struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	Source        string                 `json:"source"`
	Time          time.Time              `json:"time"`
	Data          interface{}            `json:"data"`
	Metadata      map[string]string      `json:"metadata,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
}

// NewEvent creates a new event
func NewEvent(eventType, source string, data interface{}) *Event {
	return &Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		Source: source,
		Time:   time.Now().UTC(),
		Data:   data,
	}
}

// WithCorrelationID adds correlation ID to event
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

// WithMetadata adds metadata to event
func (e *Event) WithMetadata(key, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// Producer handles publishing events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *logger.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	return &Producer{
		writer: writer,
		logger: log,
	}
}

// Publish publishes an event to a topic
func (p *Producer) Publish(ctx context.Context, topic string, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(event.ID),
		Value: data,
		Time:  event.Time,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "source", Value: []byte(event.Source)},
		},
	}

	if event.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   "correlation_id",
			Value: []byte(event.CorrelationID),
		})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Errorw("Failed to publish event",
			"topic", topic,
			"event_type", event.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("Event published",
		"topic", topic,
		"event_id", event.ID,
		"event_type", event.Type,
	)

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
