package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studiobella/spa-admin-api/internal/audit"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleInput struct {
	ClientID   uint
	EmployeeID uint
	ServiceID  uint

	Date      string
	StartTime string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type ScheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewScheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ScheduleAppointment {
	return &ScheduleAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ScheduleAppointment) Execute(
	ctx context.Context,
	in ScheduleInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 || in.EmployeeID == 0 || in.ServiceID == 0 ||
		in.Date == "" || in.StartTime == "" {
		return nil, httperr.ErrValidation(
			"missing_fields",
			"Client, employee, service, date and start time are required.",
		)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if _, err := domain.ParseClock(in.StartTime); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	employee, err := uc.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Active {
		return nil, httperr.ErrValidation(
			"employee_inactive",
			"Inactive employees cannot receive new appointments.",
		)
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrValidation(
			"service_inactive",
			"This service is no longer offered.",
		)
	}

	endTime, err := domain.EndOfService(in.StartTime, service.DurationMin)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Reference:  uuid.NewString(),
		ClientID:   in.ClientID,
		EmployeeID: in.EmployeeID,
		ServiceID:  in.ServiceID,
		Date:       date,
		StartTime:  in.StartTime,
		EndTime:    endTime,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,

		// Price snapshot: later catalog changes never touch this booking.
		Total: service.Price,
	}

	// Conflict scan and insert run in one transaction inside the repository.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_scheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
