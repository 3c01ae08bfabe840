package appointment

import "github.com/studiobella/spa-admin-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// All lists every status in display order. Aggregations emit dense maps
// keyed by this set.
func All() []Status {
	return []Status{
		StatusScheduled,
		StatusConfirmed,
		StatusCompleted,
		StatusCancelled,
		StatusNoShow,
	}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", httperr.ErrValidation("invalid_status", "Unknown appointment status: "+s)
}

// IsPending reports whether a status still represents an open booking.
func IsPending(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CountsForConflict reports whether an appointment in this status blocks
// the employee's time slot. Only cancelled appointments free the slot;
// no-shows keep blocking historical intervals.
func CountsForConflict(s Status) bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusScheduled
}
