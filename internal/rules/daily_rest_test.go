package rules

import (
	"testing"

	"github.com/draymaster/tachocompliance/internal/domain"
	"github.com/draymaster/tachocompliance/shared/pkg/config"
)

func TestCheckDailyRest_NormalRestIsClean(t *testing.T) {
	limits := config.DefaultRegulationLimits()
	d := domain.NewDriverActivity("Jane Doe", "CARD-1", []domain.Activity{
		act(domain.Driving, "2024-01-01T06:00:00Z", 10*60, t),
		act(domain.Rest, "2024-01-01T16:00:00Z", 11*60, t),
		act(domain.Driving, "2024-01-02T03:00:00Z", 8*60, t),
	})

	got := CheckDailyRest(d, limits)
	if len(got) != 0 {
		t.Fatalf("expected no infringements for an 11h rest, got %+v", got)
	}
}

func TestCheckDailyRest_InsufficientRestCitesNineHourLimit(t *testing.T) {
	limits := config.DefaultRegulationLimits()
	d := domain.NewDriverActivity("Jane Doe", "CARD-1", []domain.Activity{
		act(domain.Driving, "2024-01-01T06:00:00Z", 10*60, t),
		act(domain.Rest, "2024-01-01T16:00:00Z", 7*60, t),
		act(domain.Driving, "2024-01-02T06:00:00Z", 9*60, t),
	})

	got := CheckDailyRest(d, limits)
	if len(got) == 0 {
		t.Fatal("expected at least one infringement for a 7h rest")
	}
	found := false
	for _, inf := range got {
		if inf.Limit == 9.0 && inf.Excess == 2.0 && inf.Severity == domain.SI {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a limit=9.0 excess=2.0 SI infringement, got %+v", got)
	}
}

func TestCheckDailyRest_FourthReducedRestInfringes(t *testing.T) {
	limits := config.DefaultRegulationLimits()
	var activities []domain.Activity
	day := 0
	for i := 0; i < 4; i++ {
		activities = append(activities, act(domain.Driving, dayAt(t, day, "06:00:00"), 8*60, t))
		activities = append(activities, act(domain.Rest, dayAt(t, day, "14:00:00"), 9*60+30, t))
		day++
	}

	d := domain.NewDriverActivity("Jane Doe", "CARD-1", activities)
	got := CheckDailyRest(d, limits)

	reducedInfringements := 0
	for _, inf := range got {
		if inf.Details != "" {
			reducedInfringements++
		}
	}
	if reducedInfringements != 1 {
		t.Errorf("expected exactly 1 infringement from the 4th reduced rest, got %d: %+v", reducedInfringements, got)
	}
}

func TestCheckDailyRest_ThreeReducedRestsAreFree(t *testing.T) {
	limits := config.DefaultRegulationLimits()
	var activities []domain.Activity
	for i := 0; i < 3; i++ {
		activities = append(activities, act(domain.Driving, dayAt(t, i, "06:00:00"), 8*60, t))
		activities = append(activities, act(domain.Rest, dayAt(t, i, "14:00:00"), 9*60+30, t))
	}

	d := domain.NewDriverActivity("Jane Doe", "CARD-1", activities)
	got := CheckDailyRest(d, limits)
	for _, inf := range got {
		if inf.Details != "" {
			t.Errorf("expected no reduced-rest-count infringements within the first 3, got %+v", got)
		}
	}
}

func TestCheckDailyRest_NoQualifyingRestOverLongSpan(t *testing.T) {
	limits := config.DefaultRegulationLimits()
	d := domain.NewDriverActivity("Jane Doe", "CARD-1", []domain.Activity{
		act(domain.Driving, "2024-01-01T06:00:00Z", 10*60, t),
		act(domain.Driving, "2024-01-03T06:00:00Z", 10*60, t),
	})

	got := CheckDailyRest(d, limits)
	found := false
	for _, inf := range got {
		if inf.Value == 0 && inf.Excess == 9.0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a zero-value infringement for the unbroken long span, got %+v", got)
	}
}

func dayAt(t *testing.T, dayOffset int, clock string) string {
	t.Helper()
	base := mustTime(t, "2024-01-01T00:00:00Z")
	day := base.AddDate(0, 0, dayOffset)
	return day.Format("2006-01-02") + "T" + clock + "Z"
}
