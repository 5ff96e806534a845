// Package analyzer orchestrates the six rule evaluators against one DriverActivity and combines
// their outputs into a single, deterministically ordered report.
package analyzer

import (
	"sort"

	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/internal/rules"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

// Analyzer runs the six regulatory evaluators against a RegulationLimits configuration. The zero
// value is not usable; construct with New.
type Analyzer struct {
	limits *config.RegulationLimits
}

// New builds an Analyzer bound to the given regulation limits. Passing nil uses the default
// EC 561/2006 limits.
func New(limits *config.RegulationLimits) *Analyzer {
	if limits == nil {
		limits = config.DefaultRegulationLimits()
	}
	return &Analyzer{limits: limits}
}

// Analyze runs every rule evaluator against d, concatenates their findings, and returns them
// sorted by date ascending (stable, so same-day infringements keep their evaluator order).
func (a *Analyzer) Analyze(d domain.DriverActivity) []domain.Infringement {
	var infringements []domain.Infringement
	infringements = append(infringements, rules.CheckDailyDriving(d, a.limits)...)
	infringements = append(infringements, rules.CheckWeeklyDriving(d, a.limits)...)
	infringements = append(infringements, rules.CheckBiweeklyDriving(d, a.limits)...)
	infringements = append(infringements, rules.CheckBreaks(d, a.limits)...)
	infringements = append(infringements, rules.CheckDailyRest(d, a.limits)...)
	infringements = append(infringements, rules.CheckWeeklyRest(d, a.limits)...)

	sort.SliceStable(infringements, func(i, j int) bool {
		return infringements[i].Date.Before(infringements[j].Date)
	})

	return infringements
}

// AnalyzeSummary runs Analyze and projects the result into a Summary.
func (a *Analyzer) AnalyzeSummary(d domain.DriverActivity) domain.Summary {
	return domain.NewSummary(a.Analyze(d))
}
