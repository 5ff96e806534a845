package rules

import (
	"fmt"

	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/severity"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// CheckBreaks evaluates Art. 7: after a cumulative driving period, the driver must take a break
// of at least 45 minutes, or an equivalent split of at least 15 minutes followed later by at
// least 30 minutes. The check walks the chronological activity stream as a small state machine.
func CheckBreaks(d domain.DriverActivity, limits *config.RegulationLimits) []domain.Infringement {
	maxCumulative := float64(limits.Break.MaxCumulativeDrivingMins)
	qualifyingBreak := float64(limits.Break.SingleBreakMins)
	splitFirst := float64(limits.Break.SplitFirstPieceMins)
	splitSecond := float64(limits.Break.SplitSecondPieceMins)

	var infringements []domain.Infringement

	var cumulativeDriving float64
	var longestBreakSinceReset float64
	firstSplitTaken := false

	reset := func() {
		cumulativeDriving = 0
		longestBreakSinceReset = 0
		firstSplitTaken = false
	}

	for _, act := range d.Activities {
		if !act.IsValid() {
			continue
		}

		switch {
		case act.Kind == domain.Driving:
			cumulativeDriving += float64(act.DurationMinutes)
			if cumulativeDriving > maxCumulative {
				excessHours := domain.RoundHours((cumulativeDriving - maxCumulative) / 60)
				grade, err := severity.ClassifyBreak(longestBreakSinceReset)
				if err != nil {
					grade = domain.MSI
				}
				infringements = append(infringements, domain.Infringement{
					Article:         "Art. 7",
					RuleDescription: "Break after cumulative driving",
					Severity:        grade,
					Value:           domain.RoundHours(cumulativeDriving / 60),
					Limit:           domain.RoundHours(maxCumulative / 60),
					Excess:          excessHours,
					Date:            dayOf(act.Start),
					DriverName:      d.DriverName,
					CardNumber:      d.CardNumber,
					Details:         fmt.Sprintf("longest break taken: %.0f min", longestBreakSinceReset),
				})
				reset()
			}

		case act.IsQualifyingBreak():
			length := float64(act.DurationMinutes)
			if length > longestBreakSinceReset {
				longestBreakSinceReset = length
			}

			switch {
			case length >= qualifyingBreak:
				reset()
			case !firstSplitTaken && length >= splitFirst:
				firstSplitTaken = true
			case firstSplitTaken && length >= splitSecond:
				reset()
			}

		default:
			// Work activities neither accumulate driving time nor count as a break.
		}
	}

	return infringements
}
