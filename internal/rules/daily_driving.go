// Package rules holds the six regulatory evaluators, one file per article. Every evaluator is a
// pure function from a DriverActivity (plus regulation limits) to a slice of infringements; none
// of them touch the network, a clock, or a database.
package rules

import (
	"time"

	"github.com/draymaster/tachocompliance/internal/aggregate"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// CheckDailyDriving evaluates Art. 6.1: daily driving time may not exceed 9 hours, extendable to
// 10 hours at most twice per week.
func CheckDailyDriving(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	daily := aggregate.DailyDrivingMinutes(d)
	normalMins := float64(limits.Driving.DailyNormalMins)
	extendedMins := float64(limits.Driving.DailyExtendedMins)
	maxExtendedDays := limits.Driving.ExtendedDaysPerWeek

	var infringements []domain.Infringement
	extendedDaysUsed := make(map[string]int) // keyed by the ISO week's Monday, formatted

	for _, day := range aggregate.SortedDays(daily) {
		minutes := daily[day]
		weekKey := aggregate.MondayOfWeek(day).Format("2006-01-02")

		switch {
		case minutes <= normalMins:
			// within the unconditional daily limit
		case minutes < extendedMins:
			extendedDaysUsed[weekKey]++
			if extendedDaysUsed[weekKey] > maxExtendedDays {
				infringements = append(infringements, dailyDrivingInfringement(d, day, minutes, normalMins))
			}
		case minutes == extendedMins:
			extendedDaysUsed[weekKey]++
			if extendedDaysUsed[weekKey] > maxExtendedDays {
				infringements = append(infringements, dailyDrivingInfringement(d, day, minutes, normalMins))
			}
		default: // minutes > extendedMins
			if extendedDaysUsed[weekKey] < maxExtendedDays {
				extendedDaysUsed[weekKey]++
				infringements = append(infringements, dailyDrivingInfringement(d, day, minutes, extendedMins))
			} else {
				infringements = append(infringements, dailyDrivingInfringement(d, day, minutes, normalMins))
			}
		}
	}

	return infringements
}

func dailyDrivingInfringement(d domain.DriverActivity, day time.Time, minutes, limitMins float64) domain.Infringement {
	excessHours := domain.RoundHours((minutes - limitMins) / 60)
	if excessHours <= 0 {
		excessHours = 1.0
	}
	return domain.Infringement{
		Article:         "Art. 6.1",
		RuleDescription: "Daily driving time limit",
		Severity:        severityOrMI(severity.DailyDriving, excessHours),
		Value:           domain.RoundHours(minutes / 60),
		Limit:           domain.RoundHours(limitMins / 60),
		Excess:          excessHours,
		Date:            day,
		DriverName:      d.DriverName,
		CardNumber:      d.CardNumber,
	}
}

func severityOrMI(kind severity.RuleKind, excess float64) domain.Severity {
	s, err := severity.ClassifyExcess(kind, excess)
	if err != nil {
		return domain.MI
	}
	return s
}
