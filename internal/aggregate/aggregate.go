// Package aggregate derives the per-day/per-week driving totals and the contiguous rest-period
// reconstruction that every rule evaluator in internal/rules shares. Aggregators never mutate
// their inputs and never retain state across calls.
package aggregate

import (
	"sort"
	"time"

	"github.com/draymaster/tachocompliance/internal/domain"
)

// dayKey truncates a timestamp to its UTC calendar day, used as a map key throughout this
// package. Inputs are assumed to already be UTC per the model's timezone contract.
func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOfWeek returns the Monday of the ISO week containing day.
func MondayOfWeek(day time.Time) time.Time {
	d := dayKey(day)
	// time.Weekday: Sunday=0 .. Saturday=6. ISO weekday distance back to Monday:
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// DailyDrivingMinutes sums Driving activity minutes per calendar day, splitting any interval
// that crosses midnight at each day boundary. Days with no driving are absent from the map
// rather than present with a zero value.
func DailyDrivingMinutes(d domain.DriverActivity) map[time.Time]float64 {
	daily := make(map[time.Time]float64)

	for _, act := range d.Activities {
		if act.Kind != domain.Driving || !act.IsValid() {
			continue
		}

		cur := act.Start
		for dayKey(cur) != dayKey(act.End) {
			nextMidnight := dayKey(cur).AddDate(0, 0, 1)
			daily[dayKey(cur)] += nextMidnight.Sub(cur).Minutes()
			cur = nextMidnight
		}
		if minutes := act.End.Sub(cur).Minutes(); minutes > 0 {
			daily[dayKey(cur)] += minutes
		}
	}

	return daily
}

// WeeklyDrivingMinutes aggregates per-day totals into per-ISO-week totals, keyed by the Monday
// of each week.
func WeeklyDrivingMinutes(daily map[time.Time]float64) map[time.Time]float64 {
	weekly := make(map[time.Time]float64)
	for day, minutes := range daily {
		monday := MondayOfWeek(day)
		weekly[monday] += minutes
	}
	return weekly
}

// SortedDays returns the keys of a day-keyed map in ascending order.
func SortedDays(m map[time.Time]float64) []time.Time {
	days := make([]time.Time, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// RestPeriod is a maximal contiguous block of Rest activity.
type RestPeriod struct {
	Start           time.Time
	End             time.Time
	DurationMinutes float64
}

const coalesceTolerance = time.Minute

// RestPeriods reconstructs maximal contiguous Rest blocks from a chronologically sorted
// activity list. Two Rest activities coalesce when the gap between them is at most one minute;
// any non-Rest activity ends the current block. minDurationMinutes filters out blocks shorter
// than the given floor (pass 0 to keep every block, however short).
func RestPeriods(activities []domain.Activity, minDurationMinutes float64) []RestPeriod {
	sorted := make([]domain.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var periods []RestPeriod
	var curStart, curEnd time.Time
	open := false

	flush := func() {
		if !open {
			return
		}
		duration := curEnd.Sub(curStart).Minutes()
		if duration >= minDurationMinutes {
			periods = append(periods, RestPeriod{Start: curStart, End: curEnd, DurationMinutes: duration})
		}
		open = false
	}

	for _, act := range sorted {
		if !act.IsValid() {
			continue
		}
		if act.Kind == domain.Rest {
			switch {
			case !open:
				curStart, curEnd = act.Start, act.End
				open = true
			case !act.Start.After(curEnd.Add(coalesceTolerance)):
				if act.End.After(curEnd) {
					curEnd = act.End
				}
			default:
				flush()
				curStart, curEnd = act.Start, act.End
				open = true
			}
			continue
		}
		flush()
	}
	flush()

	return periods
}
