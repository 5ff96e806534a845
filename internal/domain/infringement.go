package domain

import "time"

// Infringement is an immutable record of a single detected regulatory violation.
type Infringement struct {
	Article         string // e.g. "Art. 6.1"
	RuleDescription string
	Severity        Severity
	Value           float64 // observed quantity in hours, rounded to two decimals
	Limit           float64 // regulatory threshold in hours
	Excess          float64 // hours over limit, >= 0, rounded to two decimals
	Date            time.Time // calendar date the violation is attributed to
	DriverName      string
	CardNumber      string
	Details         string // optional free text, empty when not applicable
}

// Summary is the orchestrator's projection of a full analysis.
type Summary struct {
	Total         int
	BySeverity    map[Severity]int
	ByArticle     map[string]int
	Infringements []Infringement
}

// NewSummary builds a Summary from an already-sorted infringement list, pre-seeding every
// severity grade at zero so callers never need to guard a missing key.
func NewSummary(infringements []Infringement) Summary {
	bySeverity := map[Severity]int{MI: 0, SI: 0, VSI: 0, MSI: 0}
	byArticle := make(map[string]int)

	for _, inf := range infringements {
		bySeverity[inf.Severity]++
		byArticle[inf.Article]++
	}

	return Summary{
		Total:         len(infringements),
		BySeverity:    bySeverity,
		ByArticle:     byArticle,
		Infringements: infringements,
	}
}

// round2 rounds a value to two decimal places, matching the value/limit/excess rounding
// convention required across the model.
func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// RoundHours is the shared two-decimal rounding helper used by every rule evaluator when
// constructing an Infringement's Value/Limit/Excess fields.
func RoundHours(v float64) float64 {
	return round2(v)
}
