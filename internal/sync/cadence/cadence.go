// Package cadence decides which schedule buckets fire on a given date.
package cadence

import "time"

// Evaluation is the outcome of evaluating a date against the sync policy.
type Evaluation struct {
	ShouldSync     bool     `json:"should_sync"`
	Cadences       []string `json:"cadences"`
	DayOfWeek      string   `json:"day_of_week"`
	DayOfMonth     int      `json:"day_of_month"`
	LastDayOfMonth int      `json:"last_day_of_month"`
}

// Evaluate maps a date to the cadence buckets that should run:
// daily fires Monday through Friday, weekly fires Fridays only, monthly fires
// on the last calendar day of the month. Pure function, no I/O.
func Evaluate(now time.Time) Evaluation {
	weekday := now.Weekday()
	dayOfMonth := now.Day()

	// Day 0 of next month is the last day of this month
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()

	var cadences []string
	if weekday >= time.Monday && weekday <= time.Friday {
		cadences = append(cadences, "daily")
	}
	if weekday == time.Friday {
		cadences = append(cadences, "weekly")
	}
	if dayOfMonth == lastDay {
		cadences = append(cadences, "monthly")
	}

	return Evaluation{
		ShouldSync:     len(cadences) > 0,
		Cadences:       cadences,
		DayOfWeek:      weekday.String(),
		DayOfMonth:     dayOfMonth,
		LastDayOfMonth: lastDay,
	}
}
