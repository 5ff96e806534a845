package rules

import (
	"github.com/draymaster/tachocompliance/internal/aggregate"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// CheckWeeklyDriving evaluates Art. 6.2: total driving time within any one week may not exceed
// 56 hours.
func CheckWeeklyDriving(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	daily := aggregate.DailyDrivingMinutes(d)
	weekly := aggregate.WeeklyDrivingMinutes(daily)
	limitMins := float64(limits.Driving.WeeklyMins)

	var infringements []domain.Infringement
	for _, monday := range aggregate.SortedDays(weekly) {
		minutes := weekly[monday]
		if minutes <= limitMins {
			continue
		}
		excessHours := domain.RoundHours((minutes - limitMins) / 60)
		infringements = append(infringements, domain.Infringement{
			Article:         "Art. 6.2",
			RuleDescription: "Weekly driving time limit",
			Severity:        severityOrMI(severity.WeeklyDriving, excessHours),
			Value:           domain.RoundHours(minutes / 60),
			Limit:           domain.RoundHours(limitMins / 60),
			Excess:          excessHours,
			Date:            monday.AddDate(0, 0, 6), // Sunday closing the week
			DriverName:      d.DriverName,
			CardNumber:      d.CardNumber,
		})
	}

	return infringements
}
