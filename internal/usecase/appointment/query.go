package appointment

import (
	"context"

	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/models"
)

type QueryAppointments struct {
	repo domain.Repository
}

func NewQueryAppointments(repo domain.Repository) *QueryAppointments {
	return &QueryAppointments{repo: repo}
}

func (uc *QueryAppointments) Get(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, appointmentID)
}

func (uc *QueryAppointments) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointments(ctx, filter)
}
