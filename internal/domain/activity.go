// Package domain defines the activity-interval input contract and the infringement output
// contract shared by every rule evaluator.
package domain

import (
	"sort"
	"time"
)

// ActivityKind is a closed tagged variant over the kinds of tachograph activity interval.
type ActivityKind string

const (
	Driving      ActivityKind = "DRIVING"
	Work         ActivityKind = "WORK"
	Availability ActivityKind = "AVAILABILITY"
	Rest         ActivityKind = "REST"
	Unknown      ActivityKind = "UNKNOWN"
)

// Activity is a single typed interval of a driver's day. Intervals may cross midnight and must
// not overlap other activities within the same DriverActivity.
type Activity struct {
	Kind            ActivityKind
	Start           time.Time
	End             time.Time
	DurationMinutes int
	VehicleReg      string // optional; empty when not recorded
}

// IsValid reports whether the interval satisfies the model's structural invariants. Evaluators
// silently discard activities that fail this check rather than propagating an error — see
// the error-handling design notes.
func (a Activity) IsValid() bool {
	return a.End.After(a.Start) && a.DurationMinutes > 0
}

// IsQualifyingBreak reports whether this activity counts as a break for Art. 7 purposes, where
// Availability counts alongside Rest; everywhere else the two kinds remain distinct.
func (a Activity) IsQualifyingBreak() bool {
	return a.Kind == Rest || a.Kind == Availability
}

// DriverActivity bundles one driver's identity with their chronologically ordered activities.
type DriverActivity struct {
	DriverName string // free text; "Unknown" sentinel permitted
	CardNumber string // opaque identifier; "UNKNOWN" sentinel permitted
	Activities []Activity
}

// NewDriverActivity returns a DriverActivity with its activities sorted by start time
// ascending, ties broken by end time ascending (stable).
func NewDriverActivity(driverName, cardNumber string, activities []Activity) DriverActivity {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return DriverActivity{DriverName: driverName, CardNumber: cardNumber, Activities: sorted}
}

// DrivingActivities returns only the Driving activities, in order.
func (d DriverActivity) DrivingActivities() []Activity {
	return d.filter(Driving)
}

// RestActivities returns only the Rest activities, in order.
func (d DriverActivity) RestActivities() []Activity {
	return d.filter(Rest)
}

func (d DriverActivity) filter(kind ActivityKind) []Activity {
	out := make([]Activity, 0, len(d.Activities))
	for _, a := range d.Activities {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Span returns the earliest activity start and latest activity end across the bundle. The
// second return value is false when the bundle has no activities.
func (d DriverActivity) Span() (start, end time.Time, ok bool) {
	if len(d.Activities) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = d.Activities[0].Start
	end = d.Activities[0].End
	for _, a := range d.Activities[1:] {
		if a.Start.Before(start) {
			start = a.Start
		}
		if a.End.After(end) {
			end = a.End
		}
	}
	return start, end, true
}
