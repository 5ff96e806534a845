package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/draymaster/tachocompliance/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(db, "postgres"), mock
}

func TestPostgresInfringementRepository_GetOrCreateDriver_Existing(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	repo := NewPostgresInfringementRepository(db)
	driverID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "card_number", "driver_name", "created_at", "updated_at"}).
		AddRow(driverID, "CARD-1", "Jane Doe", now, now)

	mock.ExpectQuery("SELECT \\* FROM drivers WHERE card_number = \\$1").
		WithArgs("CARD-1").
		WillReturnRows(rows)

	driver, err := repo.GetOrCreateDriver(context.Background(), "CARD-1", "Jane Doe")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if driver.ID != driverID {
		t.Errorf("ID = %v, want %v", driver.ID, driverID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresInfringementRepository_GetOrCreateDriver_CreatesWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	repo := NewPostgresInfringementRepository(db)

	mock.ExpectQuery("SELECT \\* FROM drivers WHERE card_number = \\$1").
		WithArgs("CARD-1").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec("INSERT INTO drivers").
		WillReturnResult(sqlmock.NewResult(1, 1))

	driver, err := repo.GetOrCreateDriver(context.Background(), "CARD-1", "Jane Doe")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if driver.CardNumber != "CARD-1" {
		t.Errorf("card number = %q, want CARD-1", driver.CardNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresInfringementRepository_SaveAnalysisRun(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	repo := NewPostgresInfringementRepository(db)
	driverID := uuid.New()

	summary := domain.NewSummary([]domain.Infringement{
		{Article: "Art. 6.1", Severity: domain.MSI, Value: 15, Limit: 10, Excess: 5, Date: time.Now(), DriverName: "Jane Doe", CardNumber: "CARD-1"},
	})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analysis_runs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO infringements").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	run, err := repo.SaveAnalysisRun(context.Background(), driverID, 3, summary)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.InfringementsN != 1 {
		t.Errorf("InfringementsN = %d, want 1", run.InfringementsN)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresInfringementRepository_SaveAnalysisRun_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	repo := NewPostgresInfringementRepository(db)
	driverID := uuid.New()
	summary := domain.NewSummary(nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analysis_runs").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.SaveAnalysisRun(context.Background(), driverID, 0, summary)
	if err == nil {
		t.Fatal("expected an error when the insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresInfringementRepository_GetInfringementsByCard(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	repo := NewPostgresInfringementRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "run_id", "driver_id", "article", "severity", "value", "limit", "excess", "date", "details", "created_at",
	}).AddRow(
		uuid.New(), uuid.New(), uuid.New(), "Art. 6.1", "MSI", 15.0, 10.0, 5.0, time.Now(), "", time.Now(),
	)

	mock.ExpectQuery("SELECT i\\.\\* FROM infringements").
		WithArgs("CARD-1").
		WillReturnRows(rows)

	records, err := repo.GetInfringementsByCard(context.Background(), "CARD-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Article != "Art. 6.1" {
		t.Errorf("article = %q, want Art. 6.1", records[0].Article)
	}
}
