// Package events constructs the domain events published when an analysis run detects
// infringements. It wraps shared/pkg/kafka with this service's topic names and payload shapes;
// nothing in internal/domain or internal/analyzer depends on it.
package events

import (
	"context"

	"github.com/draymaster/tachocompliance/internal/domain"
	apperrors "github.com/draymaster/tachocompliance/shared/pkg/errors"
	"github.com/draymaster/tachocompliance/shared/pkg/kafka"
	"github.com/draymaster/tachocompliance/shared/pkg/logger"
)

const source = "tachocompliance"

// Topics this service publishes to.
const (
	TopicInfringementDetected = "drivers.infringement.detected"
	TopicAnalysisCompleted    = "drivers.analysis.completed"
)

// InfringementPayload is the wire shape of a single detected infringement.
type InfringementPayload struct {
	Article    string  `json:"article"`
	Severity   string  `json:"severity"`
	Value      float64 `json:"value"`
	Limit      float64 `json:"limit"`
	Excess     float64 `json:"excess"`
	Date       string  `json:"date"`
	DriverName string  `json:"driver_name"`
	CardNumber string  `json:"card_number"`
	Details    string  `json:"details,omitempty"`
}

// AnalysisCompletedPayload summarizes a finished analysis run.
type AnalysisCompletedPayload struct {
	RunID         string         `json:"run_id"`
	CardNumber    string         `json:"card_number"`
	Total         int            `json:"total"`
	BySeverity    map[string]int `json:"by_severity"`
	InfringementsN int           `json:"infringements_count"`
}

// NewInfringementEvent builds a kafka.Event for a single infringement, recording the card number
// and article in its metadata. The producer keys each message by the event ID, so one driver's
// events are not routed to a single partition.
func NewInfringementEvent(inf domain.Infringement) *kafka.Event {
	payload := InfringementPayload{
		Article:    inf.Article,
		Severity:   string(inf.Severity),
		Value:      inf.Value,
		Limit:      inf.Limit,
		Excess:     inf.Excess,
		Date:       inf.Date.Format("2006-01-02"),
		DriverName: inf.DriverName,
		CardNumber: inf.CardNumber,
		Details:    inf.Details,
	}
	return kafka.NewEvent("infringement.detected", source, payload).
		WithMetadata("card_number", inf.CardNumber).
		WithMetadata("article", inf.Article)
}

// NewAnalysisCompletedEvent builds a kafka.Event summarizing a finished run.
func NewAnalysisCompletedEvent(runID string, summary domain.Summary, cardNumber string) *kafka.Event {
	bySeverity := make(map[string]int, len(summary.BySeverity))
	for grade, count := range summary.BySeverity {
		bySeverity[string(grade)] = count
	}

	payload := AnalysisCompletedPayload{
		RunID:          runID,
		CardNumber:     cardNumber,
		Total:          summary.Total,
		BySeverity:     bySeverity,
		InfringementsN: len(summary.Infringements),
	}
	return kafka.NewEvent("analysis.completed", source, payload).WithMetadata("card_number", cardNumber)
}

// Publisher publishes a driver's detected infringements and the run summary that follows.
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewPublisher wraps an already-constructed kafka.Producer.
func NewPublisher(producer *kafka.Producer, log *logger.Logger) *Publisher {
	return &Publisher{producer: producer, log: log}
}

// PublishRun publishes one event per infringement followed by one analysis-completed event. It
// stops at the first publish error rather than attempting the remaining events.
func (p *Publisher) PublishRun(ctx context.Context, runID string, d domain.DriverActivity, summary domain.Summary) error {
	for _, inf := range summary.Infringements {
		if err := p.producer.Publish(ctx, TopicInfringementDetected, NewInfringementEvent(inf)); err != nil {
			return apperrors.ExternalServiceError("kafka", err)
		}
	}

	if err := p.producer.Publish(ctx, TopicAnalysisCompleted, NewAnalysisCompletedEvent(runID, summary, d.CardNumber)); err != nil {
		return apperrors.ExternalServiceError("kafka", err)
	}
	return nil
}
