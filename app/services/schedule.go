package services

import "time"

// WeeklyChargeDates returns every charge date for a weekly contract:
// the first date on or after start that falls on dayOfWeek (0=Monday,
// 6=Sunday), then every 7 days while strictly before end. The end date
// itself is never emitted; it is the upper bound, not a charge day.
func WeeklyChargeDates(start, end time.Time, dayOfWeek int) []time.Time {
	// time.Weekday counts Sunday as 0; contract anchors count Monday as 0.
	target := time.Weekday((dayOfWeek + 1) % 7)

	first := start
	for first.Weekday() != target {
		first = first.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for d := first; d.Before(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}

// MonthlyChargeDates returns every charge date for a monthly contract:
// dayOfMonth in the start month if start falls on or before it, otherwise
// dayOfMonth in the following month, then every calendar month while
// strictly before end. dayOfMonth is restricted to 1-28 upstream so the
// day survives every month unchanged.
func MonthlyChargeDates(start, end time.Time, dayOfMonth int) []time.Time {
	year, month, _ := start.Date()
	first := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, start.Location())
	if start.Day() > dayOfMonth {
		first = first.AddDate(0, 1, 0)
	}

	var dates []time.Time
	for d := first; d.Before(end); d = d.AddDate(0, 1, 0) {
		dates = append(dates, d)
	}
	return dates
}
