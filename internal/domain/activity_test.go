package domain

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, layout, value string) time.Time {
	t.Helper()
	tm, err := time.Parse(layout, value)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return tm
}

func TestNewDriverActivity_SortsByStartThenEnd(t *testing.T) {
	base := mustTime(t, time.RFC3339, "2024-01-01T06:00:00Z")

	a1 := Activity{Kind: Driving, Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour), DurationMinutes: 60}
	a2 := Activity{Kind: Rest, Start: base, End: base.Add(45 * time.Minute), DurationMinutes: 45}
	a3 := Activity{Kind: Work, Start: base, End: base.Add(30 * time.Minute), DurationMinutes: 30}

	d := NewDriverActivity("Jane Doe", "CARD-1", []Activity{a1, a2, a3})

	if len(d.Activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(d.Activities))
	}
	if !d.Activities[0].Start.Equal(base) || d.Activities[0].Kind != Work {
		t.Fatalf("expected Work activity first (same start, earlier end), got %+v", d.Activities[0])
	}
	if d.Activities[1].Kind != Rest {
		t.Fatalf("expected Rest activity second, got %+v", d.Activities[1])
	}
	if d.Activities[2].Kind != Driving {
		t.Fatalf("expected Driving activity last, got %+v", d.Activities[2])
	}
}

func TestActivity_IsValid(t *testing.T) {
	base := mustTime(t, time.RFC3339, "2024-01-01T06:00:00Z")

	tests := []struct {
		name string
		a    Activity
		want bool
	}{
		{"valid interval", Activity{Start: base, End: base.Add(time.Hour), DurationMinutes: 60}, true},
		{"zero duration", Activity{Start: base, End: base, DurationMinutes: 0}, false},
		{"end before start", Activity{Start: base.Add(time.Hour), End: base, DurationMinutes: 60}, false},
		{"negative duration", Activity{Start: base, End: base.Add(time.Hour), DurationMinutes: -5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivity_IsQualifyingBreak(t *testing.T) {
	if !(Activity{Kind: Rest}).IsQualifyingBreak() {
		t.Error("Rest should qualify as a break")
	}
	if !(Activity{Kind: Availability}).IsQualifyingBreak() {
		t.Error("Availability should qualify as a break")
	}
	if (Activity{Kind: Work}).IsQualifyingBreak() {
		t.Error("Work should not qualify as a break")
	}
	if (Activity{Kind: Driving}).IsQualifyingBreak() {
		t.Error("Driving should not qualify as a break")
	}
}

func TestDriverActivity_DrivingAndRestActivities(t *testing.T) {
	base := mustTime(t, time.RFC3339, "2024-01-01T06:00:00Z")
	d := NewDriverActivity("Jane Doe", "CARD-1", []Activity{
		{Kind: Driving, Start: base, End: base.Add(time.Hour), DurationMinutes: 60},
		{Kind: Rest, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour), DurationMinutes: 60},
		{Kind: Work, Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour), DurationMinutes: 60},
	})

	if len(d.DrivingActivities()) != 1 {
		t.Errorf("expected 1 driving activity, got %d", len(d.DrivingActivities()))
	}
	if len(d.RestActivities()) != 1 {
		t.Errorf("expected 1 rest activity, got %d", len(d.RestActivities()))
	}
}

func TestDriverActivity_Span(t *testing.T) {
	base := mustTime(t, time.RFC3339, "2024-01-01T06:00:00Z")
	d := NewDriverActivity("Jane Doe", "CARD-1", nil)
	if _, _, ok := d.Span(); ok {
		t.Error("expected ok=false for empty activity list")
	}

	d2 := NewDriverActivity("Jane Doe", "CARD-1", []Activity{
		{Kind: Driving, Start: base, End: base.Add(time.Hour), DurationMinutes: 60},
		{Kind: Rest, Start: base.Add(2 * time.Hour), End: base.Add(5 * time.Hour), DurationMinutes: 180},
	})
	start, end, ok := d2.Span()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if !start.Equal(base) {
		t.Errorf("expected span start %v, got %v", base, start)
	}
	if !end.Equal(base.Add(5 * time.Hour)) {
		t.Errorf("expected span end %v, got %v", base.Add(5*time.Hour), end)
	}
}
