package rules

import (
	"fmt"
	"time"

	"github.com/draymaster/tachocompliance/internal/aggregate"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// qualifyingDailyRestMins is the >=9h threshold a rest period must clear to count as a
// "qualifying rest" for the purpose of measuring 24-hour gaps, independent of the reduced/normal
// distinction used when grading the rest period itself.
const qualifyingDailyRestMins = 9 * 60

// CheckDailyRest evaluates Art. 8.2: a new daily rest of at least 11 hours (or, up to 3 times
// between weekly rests, a reduced rest of at least 9 hours) is required within every 24 hours
// following the previous qualifying rest. It also flags 24-hour stretches with no qualifying
// rest at all. Reduced rests are counted across the whole activity bundle; the count is not
// reset by a weekly rest.
func CheckDailyRest(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	periods := aggregate.RestPeriods(d.Activities, 0)

	floorMins := float64(limits.Rest.DailyMinimumMins)
	normalMins := float64(limits.Rest.DailyNormalMins)
	reducedMins := float64(limits.Rest.DailyReducedMins)
	maxReduced := limits.Rest.MaxReducedPerCycle
	gapMins := float64(limits.Rest.DailyGapMins)

	var infringements []domain.Infringement
	reducedCount := 0

	for _, p := range periods {
		r := p.DurationMinutes
		switch {
		case r < floorMins:
			continue // too short to count as a rest period at all for this rule
		case r >= normalMins:
			// qualifying normal rest
		case r >= reducedMins:
			reducedCount++
			if reducedCount > maxReduced {
				infringements = append(infringements, dailyRestInfringement(
					d, dayOf(p.Start), r, normalMins,
					fmt.Sprintf("reduced rest #%d (max %d allowed)", reducedCount, maxReduced),
				))
			}
		default: // floorMins <= r < reducedMins
			infringements = append(infringements, dailyRestInfringement(d, dayOf(p.Start), r, reducedMins, ""))
		}
	}

	infringements = append(infringements, checkDailyRestGaps(d, periods, gapMins)...)

	return infringements
}

func dailyRestInfringement(d domain.DriverActivity, date time.Time, valueMinutes, limitMins float64, details string) domain.Infringement {
	excessHours := domain.RoundHours((limitMins - valueMinutes) / 60)
	return domain.Infringement{
		Article:         "Art. 8.2",
		RuleDescription: "Daily rest requirement",
		Severity:        severityOrMI(severity.DailyRest, excessHours),
		Value:           domain.RoundHours(valueMinutes / 60),
		Limit:           domain.RoundHours(limitMins / 60),
		Excess:          excessHours,
		Date:            date,
		DriverName:      d.DriverName,
		CardNumber:      d.CardNumber,
		Details:         details,
	}
}

// checkDailyRestGaps flags 24-hour stretches with no qualifying rest (>= 9h), citing the best
// under-threshold rest found within each gap.
func checkDailyRestGaps(d domain.DriverActivity, periods []aggregate.RestPeriod, gapMins float64) []domain.Infringement {
	var qualifying []aggregate.RestPeriod
	for _, p := range periods {
		if p.DurationMinutes >= qualifyingDailyRestMins {
			qualifying = append(qualifying, p)
		}
	}

	if len(qualifying) == 0 {
		spanStart, spanEnd, ok := d.Span()
		if !ok || spanEnd.Sub(spanStart).Minutes() <= gapMins {
			return nil
		}
		return []domain.Infringement{{
			Article:         "Art. 8.2",
			RuleDescription: "Daily rest requirement",
			Severity:        severityOrMI(severity.DailyRest, 9.0),
			Value:           0,
			Limit:           9.0,
			Excess:          9.0,
			Date:            dayOf(spanStart),
			DriverName:      d.DriverName,
			CardNumber:      d.CardNumber,
		}}
	}

	var infringements []domain.Infringement

	for i := 0; i+1 < len(qualifying); i++ {
		earlier, later := qualifying[i], qualifying[i+1]
		gapMinutes := later.Start.Sub(earlier.End).Minutes()
		if gapMinutes <= gapMins {
			continue
		}

		bestRestMins := 0.0
		for _, p := range periods {
			if p.Start.After(earlier.End) && p.End.Before(later.Start) && p.DurationMinutes < qualifyingDailyRestMins {
				if p.DurationMinutes > bestRestMins {
					bestRestMins = p.DurationMinutes
				}
			}
		}

		excessHours := domain.RoundHours((qualifyingDailyRestMins - bestRestMins) / 60)
		infringements = append(infringements, domain.Infringement{
			Article:         "Art. 8.2",
			RuleDescription: "Daily rest requirement",
			Severity:        severityOrMI(severity.DailyRest, excessHours),
			Value:           domain.RoundHours(bestRestMins / 60),
			Limit:           9.0,
			Excess:          excessHours,
			Date:            dayOf(earlier.End),
			DriverName:      d.DriverName,
			CardNumber:      d.CardNumber,
		})
	}

	return infringements
}
