package rules

import "time"

// dayOf truncates a timestamp to its UTC calendar day, matching the convention used when an
// infringement's Date field is attributed to the day an activity started rather than its
// precise timestamp.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
