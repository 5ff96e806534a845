// Package severity classifies a rule violation's excess, or a break's length, into one of the
// four grades of Directive 2009/5/EC. The threshold tables are process-wide constants: the
// classifier's only shared state, and deliberately immutable (see shared/pkg/config for the
// regulation's overridable numeric limits, which are a different kind of value).
package severity

import (
	"github.com/draymaster/tachocompliance/internal/domain"
	apperrors "github.com/draymaster/tachocompliance/shared/pkg/errors"
)

// RuleKind is a closed enumeration of the classifier's lookup keys.
type RuleKind string

const (
	DailyDriving     RuleKind = "daily_driving"
	WeeklyDriving    RuleKind = "weekly_driving"
	BiweeklyDriving  RuleKind = "biweekly_driving"
	DailyRest        RuleKind = "daily_rest"
	WeeklyRest       RuleKind = "weekly_rest"
)

// thresholds holds the (MI, SI, VSI) excess-hour boundaries for a rule kind. Boundaries are
// inclusive; MSI is anything strictly above the VSI boundary.
type thresholds struct {
	mi, si, vsi float64
}

// severityThresholds is the immutable threshold table of §4.7. It is a package-level constant
// in spirit — never mutated after init — not a configuration object.
var severityThresholds = map[RuleKind]thresholds{
	DailyDriving:    {mi: 1.0, si: 2.0, vsi: 4.5},
	WeeklyDriving:   {mi: 4.0, si: 8.0, vsi: 12.0},
	BiweeklyDriving: {mi: 4.0, si: 8.0, vsi: 12.0},
	DailyRest:       {mi: 1.0, si: 2.5, vsi: 4.5},
	WeeklyRest:      {mi: 3.0, si: 9.0, vsi: 18.0},
}

// ClassifyExcess maps a (rule kind, excess hours) pair to a severity grade. excessHours must be
// strictly positive and ruleKind must be a known key; violating either is a programming-contract
// error, not a user-data problem, and is surfaced rather than silently skipped.
func ClassifyExcess(ruleKind RuleKind, excessHours float64) (domain.Severity, error) {
	if excessHours <= 0 {
		return "", apperrors.InvalidExcessError(string(ruleKind), excessHours)
	}

	t, ok := severityThresholds[ruleKind]
	if !ok {
		return "", apperrors.UnknownRuleKindError(string(ruleKind))
	}

	switch {
	case excessHours <= t.mi:
		return domain.MI, nil
	case excessHours <= t.si:
		return domain.SI, nil
	case excessHours <= t.vsi:
		return domain.VSI, nil
	default:
		return domain.MSI, nil
	}
}

// breakThreshold is one band of the break-length grading table.
type breakThreshold struct {
	min, max float64
	grade    domain.Severity
}

// breakSeverityThresholds grades Art. 7 infringements by the longest break actually taken,
// not by excess — a different domain from the time-excess table above.
var breakSeverityThresholds = []breakThreshold{
	{min: 30, max: 45, grade: domain.MI},
	{min: 15, max: 30, grade: domain.SI},
	{min: 0, max: 15, grade: domain.VSI},
}

// ClassifyBreak grades an Art. 7 infringement by the longest break taken within the cycle, in
// minutes. A length of 45 minutes or more can never be an infringement and is a programming
// error to pass here.
func ClassifyBreak(breakMinutes float64) (domain.Severity, error) {
	if breakMinutes >= 45 {
		return "", apperrors.NotAnInfringementError(breakMinutes)
	}
	// No break taken at all is the most serious case, strictly worse than any nonzero but
	// inadequate break.
	if breakMinutes <= 0 {
		return domain.MSI, nil
	}

	for _, t := range breakSeverityThresholds {
		if breakMinutes >= t.min && breakMinutes < t.max {
			return t.grade, nil
		}
	}
	return domain.MSI, nil
}
