package rules

import (
	"time"

	"github.com/draymaster/tachocompliance/internal/aggregate"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// CheckBiweeklyDriving evaluates Art. 6.3: total driving time over any two consecutive weeks may
// not exceed 90 hours. Only weeks that are genuinely adjacent (7 days apart, Monday to Monday)
// are paired.
func CheckBiweeklyDriving(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	daily := aggregate.DailyDrivingMinutes(d)
	weekly := aggregate.WeeklyDrivingMinutes(daily)
	limitMins := float64(limits.Driving.BiweeklyMins)

	weeks := aggregate.SortedDays(weekly)

	var infringements []domain.Infringement
	for i := 0; i+1 < len(weeks); i++ {
		week1, week2 := weeks[i], weeks[i+1]
		if week2.Sub(week1) != 7*24*time.Hour {
			continue
		}

		minutes := weekly[week1] + weekly[week2]
		if minutes <= limitMins {
			continue
		}

		excessHours := domain.RoundHours((minutes - limitMins) / 60)
		infringements = append(infringements, domain.Infringement{
			Article:         "Art. 6.3",
			RuleDescription: "Two-week driving time limit",
			Severity:        severityOrMI(severity.BiweeklyDriving, excessHours),
			Value:           domain.RoundHours(minutes / 60),
			Limit:           domain.RoundHours(limitMins / 60),
			Excess:          excessHours,
			Date:            week2.AddDate(0, 0, 6), // Sunday closing the second week
			DriverName:      d.DriverName,
			CardNumber:      d.CardNumber,
		})
	}

	return infringements
}
