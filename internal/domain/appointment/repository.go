package appointment

import (
	"context"
	"time"

	"github.com/studiobella/spa-admin-api/internal/models"
)

// ListFilter narrows appointment listings. Nil fields are ignored.
type ListFilter struct {
	Date       *time.Time
	ClientID   *uint
	EmployeeID *uint
	Status     *Status
}

type Repository interface {
	// -------- Reference lookups --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment persists a new appointment after verifying, inside
	// one transaction, that no non-cancelled appointment for the same
	// employee and date overlaps it. Returns a conflict error and persists
	// nothing when the slot is taken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment saves the mutated record. With recheckConflict set
	// it re-runs the overlap scan (excluding the record itself) in the same
	// transaction as the save.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		recheckConflict bool,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Dashboard counters --------
	CountActiveServices(ctx context.Context) (int64, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
}
