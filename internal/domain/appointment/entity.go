package appointment

import (
	"time"

	"github.com/studiobella/spa-admin-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel soft-deletes the appointment. Cancelling an already-cancelled
// appointment is a no-op that still succeeds, so the operation is safe to
// retry.
func Cancel(ap *models.Appointment, now time.Time) {
	if Status(ap.Status) == StatusCancelled {
		return
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
}

// ApplyStatus records a status transition requested through an update patch.
// Completion and cancellation stamp their timestamps the first time they are
// reached.
func ApplyStatus(ap *models.Appointment, next Status, now time.Time) {
	switch next {
	case StatusCompleted:
		if Status(ap.Status) != StatusCompleted {
			ap.CompletedAt = &now
		}
	case StatusCancelled:
		if Status(ap.Status) != StatusCancelled {
			ap.CancelledAt = &now
		}
	}

	ap.Status = string(next)
}
