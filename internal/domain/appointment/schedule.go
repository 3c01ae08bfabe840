package appointment

import (
	"fmt"
	"time"

	"github.com/studiobella/spa-admin-api/internal/httperr"
)

const minutesPerDay = 24 * 60

// ParseClock parses a strict 24-hour "HH:MM" wall-clock string into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, httperr.ErrValidation("invalid_time", "Time must be HH:MM (24h): "+s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, httperr.ErrValidation("invalid_time", "Time must be HH:MM (24h): "+s)
		}
	}

	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, httperr.ErrValidation("invalid_time", "Time out of range: "+s)
	}

	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndOfService derives an appointment's end time from its start time and the
// service duration, minute arithmetic only. Results that reach or cross
// midnight are rejected: same-day HH:MM values cannot represent them and the
// clock must never silently wrap.
func EndOfService(start string, durationMin int) (string, error) {
	if durationMin <= 0 {
		return "", httperr.ErrValidation("invalid_duration", "Service duration must be positive.")
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return "", err
	}

	endMin := startMin + durationMin
	if endMin >= minutesPerDay {
		return "", httperr.ErrValidation(
			"crosses_midnight",
			"Appointment would end past midnight; pick an earlier start time.",
		)
	}

	return FormatClock(endMin), nil
}

// Overlaps applies half-open interval semantics to two same-day time ranges:
// [aStart, aEnd) and [bStart, bEnd) conflict iff aStart < bEnd && bStart < aEnd.
// Back-to-back appointments therefore never conflict. Zero-padded HH:MM
// strings order correctly under lexicographic comparison.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses a calendar day in "2006-01-02" form. The result carries no
// timezone meaning beyond being a day bucket.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD: "+s)
	}
	return d, nil
}
