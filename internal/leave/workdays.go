package leave

import "time"

// CountWorkingDays counts Monday-Friday dates in the inclusive range
// [start, end]. Holidays are not excluded; a range covering only a weekend
// counts zero days and is still a valid application.
func CountWorkingDays(start, end time.Time) int {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days++
		}
	}
	return days
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
