package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/draymaster/tachocompliance/internal/domain"
	apperrors "github.com/draymaster/tachocompliance/shared/pkg/errors"
)

// PostgresInfringementRepository implements InfringementRepository against a Postgres database
// reached through database/sql's pgx/v5 driver.
type PostgresInfringementRepository struct {
	db *sqlx.DB
}

// NewPostgresInfringementRepository wraps an already-connected sqlx.DB.
func NewPostgresInfringementRepository(db *sqlx.DB) *PostgresInfringementRepository {
	return &PostgresInfringementRepository{db: db}
}

func (r *PostgresInfringementRepository) GetOrCreateDriver(ctx context.Context, cardNumber, driverName string) (*DriverRecord, error) {
	var driver DriverRecord
	query := `SELECT * FROM drivers WHERE card_number = $1`
	err := r.db.GetContext(ctx, &driver, query, cardNumber)
	if err == nil {
		return &driver, nil
	}
	if err != sql.ErrNoRows {
		return nil, apperrors.DatabaseError("get_driver_by_card", err)
	}

	driver = DriverRecord{
		ID:         uuid.New(),
		CardNumber: cardNumber,
		DriverName: driverName,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	insert := `
		INSERT INTO drivers (id, card_number, driver_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, insert, driver.ID, driver.CardNumber, driver.DriverName, driver.CreatedAt, driver.UpdatedAt); err != nil {
		return nil, apperrors.DatabaseError("insert_driver", err)
	}
	return &driver, nil
}

func (r *PostgresInfringementRepository) SaveAnalysisRun(ctx context.Context, driverID uuid.UUID, activityCount int, summary domain.Summary) (*AnalysisRun, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperrors.DatabaseError("begin_tx", err)
	}
	defer tx.Rollback()

	run := AnalysisRun{
		ID:             uuid.New(),
		DriverID:       driverID,
		ActivityCount:  activityCount,
		InfringementsN: summary.Total,
		RunAt:          time.Now(),
	}

	insertRun := `
		INSERT INTO analysis_runs (id, driver_id, activity_count, infringements_count, run_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertRun, run.ID, run.DriverID, run.ActivityCount, run.InfringementsN, run.RunAt); err != nil {
		return nil, apperrors.DatabaseError("insert_analysis_run", err)
	}

	insertInfringement := `
		INSERT INTO infringements (id, run_id, driver_id, article, severity, value, "limit", excess, date, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, inf := range summary.Infringements {
		if _, err := tx.ExecContext(ctx, insertInfringement,
			uuid.New(), run.ID, driverID, inf.Article, string(inf.Severity),
			inf.Value, inf.Limit, inf.Excess, inf.Date, inf.Details, time.Now(),
		); err != nil {
			return nil, apperrors.DatabaseError("insert_infringement", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.DatabaseError("commit_analysis_run", err)
	}
	return &run, nil
}

func (r *PostgresInfringementRepository) GetInfringementsByCard(ctx context.Context, cardNumber string) ([]InfringementRecord, error) {
	var records []InfringementRecord
	query := `
		SELECT i.* FROM infringements i
		JOIN drivers d ON d.id = i.driver_id
		WHERE d.card_number = $1
		ORDER BY i.created_at DESC`
	if err := r.db.SelectContext(ctx, &records, query, cardNumber); err != nil {
		return nil, apperrors.DatabaseError("get_infringements_by_card", err)
	}
	return records, nil
}

func (r *PostgresInfringementRepository) GetSummaryByCard(ctx context.Context, cardNumber string) ([]SeverityCount, error) {
	var counts []SeverityCount
	query := `
		SELECT i.severity AS severity, COUNT(*) AS count
		FROM infringements i
		JOIN drivers d ON d.id = i.driver_id
		WHERE d.card_number = $1
		GROUP BY i.severity`
	if err := r.db.SelectContext(ctx, &counts, query, cardNumber); err != nil {
		return nil, apperrors.DatabaseError("get_summary_by_card", err)
	}
	return counts, nil
}
