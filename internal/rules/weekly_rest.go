package rules

import (
	"fmt"

	"github.com/draymaster/tachocompliance/internal/aggregate"
	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// weeklyRestCandidateFloorMins bounds which rest blocks are even considered candidates for a
// weekly rest: anything shorter than half the reduced weekly rest can never plausibly be one.
const weeklyRestCandidateFloorMins = 12 * 60

// CheckWeeklyRest evaluates Art. 8.6: a new weekly rest of at least 45 hours (normal) or at
// least 24 hours (reduced) must begin within every 144 hours following the previous one.
func CheckWeeklyRest(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	candidates := aggregate.RestPeriods(d.Activities, weeklyRestCandidateFloorMins)

	weeklyMins := float64(limits.Rest.WeeklyReducedMins)
	normalMins := float64(limits.Rest.WeeklyNormalMins)
	gapHoursLimit := float64(limits.Rest.WeeklyGapMins) / 60

	// reducedTaken notes which satisfying rests fell short of the normal 45h rest. Regulation
	// (EC) 561/2006 requires a reduced weekly rest be compensated by an equivalent block of rest
	// attached to another rest before the end of the third following week; tracking that
	// compensation deadline is out of scope here (see daily rest's MaxReducedPerCycle for the
	// one reduced-rest cap this package does enforce), so reduced rests below are only annotated,
	// never independently flagged as infringing.
	reducedTaken := make(map[int]bool, len(candidates))
	var weeklyRests []aggregate.RestPeriod
	for _, c := range candidates {
		if c.DurationMinutes >= weeklyMins {
			reducedTaken[len(weeklyRests)] = c.DurationMinutes < normalMins
			weeklyRests = append(weeklyRests, c)
		}
	}

	var infringements []domain.Infringement

	if len(weeklyRests) == 0 {
		spanStart, spanEnd, ok := d.Span()
		if ok && spanEnd.Sub(spanStart).Hours() > gapHoursLimit {
			bestRestMins := 0.0
			for _, c := range candidates {
				if c.DurationMinutes > bestRestMins {
					bestRestMins = c.DurationMinutes
				}
			}
			excessHours := domain.RoundHours((weeklyMins - bestRestMins) / 60)
			infringements = append(infringements, domain.Infringement{
				Article:         "Art. 8.6",
				RuleDescription: "Weekly rest requirement",
				Severity:        severityOrMI(severity.WeeklyRest, excessHours),
				Value:           domain.RoundHours(bestRestMins / 60),
				Limit:           domain.RoundHours(weeklyMins / 60),
				Excess:          excessHours,
				Date:            dayOf(spanStart),
				DriverName:      d.DriverName,
				CardNumber:      d.CardNumber,
			})
		}
		return infringements
	}

	fixedSeverity := severityOrMI(severity.WeeklyRest, 3.0)

	for i := 0; i+1 < len(weeklyRests); i++ {
		earlier, later := weeklyRests[i], weeklyRests[i+1]
		gapHours := later.Start.Sub(earlier.End).Hours()
		if gapHours <= gapHoursLimit {
			continue
		}

		details := ""
		if reducedTaken[i] {
			details = fmt.Sprintf("preceding rest was reduced (%.0fh, normal is %.0fh)", earlier.DurationMinutes/60, normalMins/60)
		}

		infringements = append(infringements, domain.Infringement{
			Article:         "Art. 8.6",
			RuleDescription: "Weekly rest requirement",
			Severity:        fixedSeverity,
			Value:           domain.RoundHours(gapHours),
			Limit:           domain.RoundHours(gapHoursLimit),
			Excess:          domain.RoundHours(gapHours - gapHoursLimit),
			Date:            dayOf(earlier.End),
			DriverName:      d.DriverName,
			CardNumber:      d.CardNumber,
			Details:         details,
		})
	}

	return infringements
}
