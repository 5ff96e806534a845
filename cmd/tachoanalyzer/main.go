// Command tachoanalyzer runs the EC 561/2006 compliance analyzer against one driver's activity
// bundle, persists the result, and publishes an event per detected infringement.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/draymaster/tachocompliance/internal/analyzer"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/events"
	"github.com/draymaster/tachocompliance/internal/store"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
	apperrors "github.com/draymaster/tachocompliance/shared/pkg/errors"
	"github.com/draymaster/tachocompliance/shared/pkg/kafka"
	"github.com/draymaster/tachocompliance/shared/pkg/logger"
)

// activityInput mirrors the wire shape of one activity interval, as produced by whatever
// upstream decoder turns a tachograph card dump into JSON.
type activityInput struct {
	Kind       string    `json:"kind"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	VehicleReg string    `json:"vehicle_reg"`
}

type driverInput struct {
	DriverName string          `json:"driver_name"`
	CardNumber string          `json:"card_number"`
	Activities []activityInput `json:"activities"`
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Service.Name, cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		log.Fatal("usage: tachoanalyzer <activity-file.json>")
	}

	log.Info("starting tachocompliance analyzer run")

	driver, err := loadDriverActivity(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("failed to load activity input")
	}
	log = log.WithDriver(driver.CardNumber)

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		log.WithError(apperrors.DatabaseError("connect", err)).Fatal("failed to connect to database")
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	repo := store.NewPostgresInfringementRepository(db)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()
	publisher := events.NewPublisher(producer, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := analyzer.New(config.DefaultRegulationLimits()).AnalyzeSummary(driver)
	log.Infow("analysis complete", "total_infringements", result.Total)

	driverRecord, err := repo.GetOrCreateDriver(ctx, driver.CardNumber, driver.DriverName)
	if err != nil {
		log.WithError(err).Fatal("failed to resolve driver record")
	}

	run, err := repo.SaveAnalysisRun(ctx, driverRecord.ID, len(driver.Activities), result)
	if err != nil {
		log.WithError(err).Fatal("failed to persist analysis run")
	}
	log = log.WithRun(run.ID.String())

	if err := publisher.PublishRun(ctx, run.ID.String(), driver, result); err != nil {
		log.WithError(err).Error("failed to publish analysis events")
	}

	log.Infow("analysis run persisted",
		"by_severity", result.BySeverity,
		"by_article", result.ByArticle,
	)
}

func loadDriverActivity(path string) (domain.DriverActivity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.DriverActivity{}, fmt.Errorf("reading activity file: %w", err)
	}

	var input driverInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return domain.DriverActivity{}, fmt.Errorf("parsing activity file: %w", err)
	}

	activities := make([]domain.Activity, 0, len(input.Activities))
	for _, a := range input.Activities {
		activities = append(activities, domain.Activity{
			Kind:            domain.ActivityKind(a.Kind),
			Start:           a.Start,
			End:             a.End,
			DurationMinutes: int(a.End.Sub(a.Start).Round(time.Minute).Minutes()),
			VehicleReg:      a.VehicleReg,
		})
	}

	if input.CardNumber == "" {
		input.CardNumber = "UNKNOWN"
	}
	if input.DriverName == "" {
		input.DriverName = "Unknown"
	}

	return domain.NewDriverActivity(input.DriverName, input.CardNumber, activities), nil
}
