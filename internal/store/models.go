// Package store persists analysis runs and their infringements. It is the only layer that knows
// about SQL, connection pooling, or row mapping — internal/domain and internal/analyzer remain
// unaware it exists.
package store

import (
	"time"

	"github.com/google/uuid"
)

// DriverRecord identifies a driver across analysis runs.
type DriverRecord struct {
	ID         uuid.UUID `db:"id"`
	CardNumber string    `db:"card_number"`
	DriverName string    `db:"driver_name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// AnalysisRun records one execution of the analyzer against a driver's activity bundle.
type AnalysisRun struct {
	ID              uuid.UUID `db:"id"`
	DriverID        uuid.UUID `db:"driver_id"`
	ActivityCount   int       `db:"activity_count"`
	InfringementsN  int       `db:"infringements_count"`
	RunAt           time.Time `db:"run_at"`
}

// InfringementRecord is the persisted form of a domain.Infringement, scoped to one analysis run.
type InfringementRecord struct {
	ID         uuid.UUID `db:"id"`
	RunID      uuid.UUID `db:"run_id"`
	DriverID   uuid.UUID `db:"driver_id"`
	Article    string    `db:"article"`
	Severity   string    `db:"severity"`
	Value      float64   `db:"value"`
	Limit      float64   `db:"limit"`
	Excess     float64   `db:"excess"`
	Date       time.Time `db:"date"`
	Details    string    `db:"details"`
	CreatedAt  time.Time `db:"created_at"`
}

// SeverityCount is one row of a by-severity aggregate.
type SeverityCount struct {
	Severity string `db:"severity"`
	Count    int    `db:"count"`
}
