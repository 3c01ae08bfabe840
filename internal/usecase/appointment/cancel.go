package appointment

import (
	"context"
	"time"

	"github.com/studiobella/spa-admin-api/internal/audit"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute soft-deletes the appointment: the row stays queryable and keeps
// feeding the cancelled metrics bucket. Repeated cancellations succeed
// without changing anything.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	alreadyCancelled := domain.Status(ap.Status) == domain.StatusCancelled

	domain.Cancel(ap, uc.now())

	if !alreadyCancelled {
		if err := uc.repo.UpdateAppointment(ctx, ap, false); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, nil
}
