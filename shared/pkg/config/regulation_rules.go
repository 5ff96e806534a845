package config

// RegulationLimits contains the configurable numeric limits of Regulation (EC) 561/2006.
// These are distinct from the severity threshold tables in internal/severity, which are
// immutable constants: a future amendment to the regulation's numeric limits should not
// require touching rule evaluator control flow, only these defaults.
type RegulationLimits struct {
	Driving DrivingLimits
	Break   BreakLimits
	Rest    RestLimits
}

// DrivingLimits contains Art. 6.1/6.2/6.3 thresholds.
type DrivingLimits struct {
	DailyNormalMins     int // 9h normal daily driving limit
	DailyExtendedMins   int // 10h tolerated daily driving limit
	ExtendedDaysPerWeek int // max number of extended days tolerated per ISO week
	WeeklyMins          int // 56h weekly driving limit
	BiweeklyMins        int // 90h limit over two consecutive ISO weeks
}

// BreakLimits contains Art. 7 thresholds.
type BreakLimits struct {
	MaxCumulativeDrivingMins int // 4h30 cumulative driving before a qualifying break is due
	SingleBreakMins          int // 45-minute single qualifying break
	SplitFirstPieceMins      int // 15-minute first piece of a split break
	SplitSecondPieceMins     int // 30-minute second piece of a split break
}

// RestLimits contains Art. 8.2/8.6 thresholds.
type RestLimits struct {
	DailyNormalMins    int // 11h normal daily rest
	DailyReducedMins   int // 9h reduced daily rest
	DailyMinimumMins   int // 7h floor below which a rest period isn't counted at all
	MaxReducedPerCycle int // max reduced daily rests allowed; counted over the whole activity bundle
	DailyGapMins       int // 24h window within which a qualifying daily rest must occur
	WeeklyNormalMins   int // 45h normal weekly rest
	WeeklyReducedMins  int // 24h reduced weekly rest: minimum for a rest block to count as a weekly rest
	WeeklyGapMins      int // 144h (6 days) window within which a weekly rest must begin
}

// DefaultRegulationLimits returns the limits fixed by Regulation (EC) 561/2006 as it stands
// today.
func DefaultRegulationLimits() *RegulationLimits {
	return &RegulationLimits{
		Driving: DrivingLimits{
			DailyNormalMins:     9 * 60,
			DailyExtendedMins:   10 * 60,
			ExtendedDaysPerWeek: 2,
			WeeklyMins:          56 * 60,
			BiweeklyMins:        90 * 60,
		},
		Break: BreakLimits{
			MaxCumulativeDrivingMins: 4*60 + 30,
			SingleBreakMins:          45,
			SplitFirstPieceMins:      15,
			SplitSecondPieceMins:     30,
		},
		Rest: RestLimits{
			DailyNormalMins:    11 * 60,
			DailyReducedMins:   9 * 60,
			DailyMinimumMins:   7 * 60,
			MaxReducedPerCycle: 3,
			DailyGapMins:       24 * 60,
			WeeklyNormalMins:   45 * 60,
			WeeklyReducedMins:  24 * 60,
			WeeklyGapMins:      144 * 60,
		},
	}
}
