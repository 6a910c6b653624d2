package timerange

import "time"

// Range is a half-open interval [Start, End) in Unix seconds, used to query
// the portal calendar. Timestamps are computed from local wall-clock time.
type Range struct {
	Start int64
	End   int64
}

// Duration returns the span of the range.
func (r Range) Duration() time.Duration {
	return time.Duration(r.End-r.Start) * time.Second
}

// midnight truncates t to 00:00:00 on the same calendar day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOffset returns the number of days since the most recent Monday,
// reckoning Monday as day 0.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Tomorrow returns the 24-hour window covering tomorrow: from midnight of the
// day after now up to, but not including, the following midnight.
func Tomorrow(now time.Time) Range {
	start := midnight(now.AddDate(0, 0, 1))
	end := midnight(now.AddDate(0, 0, 2))
	return Range{Start: start.Unix(), End: end.Unix()}
}

// ThisWeek returns the window for the current week: from midnight on Monday up
// to midnight at the start of Sunday. The span is six days, not seven; the
// portal query contract counts the week as Monday through Sunday's start.
func ThisWeek(now time.Time) Range {
	start := midnight(now.AddDate(0, 0, -mondayOffset(now)))
	end := midnight(start.AddDate(0, 0, 6))
	return Range{Start: start.Unix(), End: end.Unix()}
}

// NextWeek returns the same Monday-to-Sunday-start window as ThisWeek, offset
// one week forward.
func NextWeek(now time.Time) Range {
	start := midnight(now.AddDate(0, 0, 7-mondayOffset(now)))
	end := midnight(start.AddDate(0, 0, 6))
	return Range{Start: start.Unix(), End: end.Unix()}
}
