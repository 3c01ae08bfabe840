package appointment

import (
	"context"
	"time"

	"github.com/studiobella/spa-admin-api/internal/audit"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateInput is a partial patch: nil fields are left untouched.
type UpdateInput struct {
	ClientID   *uint
	EmployeeID *uint
	ServiceID  *uint

	Date      *string
	StartTime *string
	EndTime   *string
	Status    *string
	Notes     *string
	Total     *float64
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Any change to the employee, day or time window invalidates the
	// original conflict scan, so it runs again on save.
	recheckConflict := false

	if in.ClientID != nil && *in.ClientID != ap.ClientID {
		if _, err := uc.repo.GetClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		ap.ClientID = *in.ClientID
	}

	if in.EmployeeID != nil && *in.EmployeeID != ap.EmployeeID {
		employee, err := uc.repo.GetEmployee(ctx, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !employee.Active {
			return nil, httperr.ErrValidation(
				"employee_inactive",
				"Inactive employees cannot receive appointments.",
			)
		}
		ap.EmployeeID = *in.EmployeeID
		recheckConflict = true
	}

	if in.Date != nil {
		date, err := domain.ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		if !date.Equal(ap.Date) {
			ap.Date = date
			recheckConflict = true
		}
	}

	if in.StartTime != nil && *in.StartTime != ap.StartTime {
		if _, err := domain.ParseClock(*in.StartTime); err != nil {
			return nil, err
		}
		ap.StartTime = *in.StartTime
		recheckConflict = true
	}

	serviceChanged := in.ServiceID != nil && *in.ServiceID != ap.ServiceID

	if serviceChanged {
		service, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}

		// Swapping the service re-derives the end time and retakes the
		// price snapshot from the new service.
		endTime, err := domain.EndOfService(ap.StartTime, service.DurationMin)
		if err != nil {
			return nil, err
		}

		ap.ServiceID = *in.ServiceID
		ap.EndTime = endTime
		ap.Total = service.Price
		recheckConflict = true
	} else {
		// Same service: end time and total change only when the patch says
		// so explicitly.
		if in.EndTime != nil {
			if _, err := domain.ParseClock(*in.EndTime); err != nil {
				return nil, err
			}
			ap.EndTime = *in.EndTime
			recheckConflict = true
		}
		if in.Total != nil {
			ap.Total = *in.Total
		}
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		domain.ApplyStatus(ap, status, uc.now())
	}

	// Cancelled appointments no longer hold the slot, so there is nothing
	// left to conflict with.
	if !domain.CountsForConflict(domain.Status(ap.Status)) {
		recheckConflict = false
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, recheckConflict); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
