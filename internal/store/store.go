package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/draymaster/tachocompliance/internal/domain"
)

// InfringementRepository persists analysis runs and the infringements they produced.
type InfringementRepository interface {
	// GetOrCreateDriver returns the existing driver record for cardNumber, creating one if it
	// does not yet exist.
	GetOrCreateDriver(ctx context.Context, cardNumber, driverName string) (*DriverRecord, error)

	// SaveAnalysisRun persists one analysis run and its infringements atomically.
	SaveAnalysisRun(ctx context.Context, driverID uuid.UUID, activityCount int, summary domain.Summary) (*AnalysisRun, error)

	// GetInfringementsByCard returns every persisted infringement for a card number, most
	// recent run first.
	GetInfringementsByCard(ctx context.Context, cardNumber string) ([]InfringementRecord, error)

	// GetSummaryByCard returns the all-time severity counts for a card number.
	GetSummaryByCard(ctx context.Context, cardNumber string) ([]SeverityCount, error)
}
