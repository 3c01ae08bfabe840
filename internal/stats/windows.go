package stats

import "time"

// Calendar buckets are wall-clock, timezone-naive: two instants fall in the
// same bucket iff their year/month/day components match. Normalizing to UTC
// midnight makes day keys comparable regardless of the location attached to
// the stored date.

func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dayKey(a).Equal(dayKey(b))
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// last7Days returns the 7 calendar-day keys ending at now's day, oldest
// first.
func last7Days(now time.Time) []time.Time {
	days := make([]time.Time, 0, 7)
	start := dayKey(now).AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
