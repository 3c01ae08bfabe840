package appointment

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/studiobella/spa-admin-api/internal/audit"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo mirrors the gorm repository's contract in memory, including the
// transactional all-or-nothing conflict scan.
type fakeRepo struct {
	clients      map[uint]*models.Client
	employees    map[uint]*models.Employee
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients: map[uint]*models.Client{
			1: {ID: 1, Name: "Anna", Surname: "Rossi"},
		},
		employees: map[uint]*models.Employee{
			1: {ID: 1, Name: "Giulia", Surname: "Bianchi", Active: true},
			2: {ID: 2, Name: "Marco", Surname: "Verdi", Active: false},
		},
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Swedish massage", DurationMin: 45, Price: 150, Active: true},
			2: {ID: 2, Name: "Facial", DurationMin: 30, Price: 80, Active: true},
			3: {ID: 3, Name: "Retired wrap", DurationMin: 60, Price: 120, Active: false},
		},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, httperr.ErrNotFound("client_not_found", "Client not found.")
	}
	return c, nil
}

func (r *fakeRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, httperr.ErrNotFound("employee_not_found", "Employee not found.")
	}
	return e, nil
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}
	return s, nil
}

func (r *fakeRepo) conflict(ap *models.Appointment, excludeID uint) bool {
	for _, other := range r.appointments {
		if other.ID == excludeID ||
			other.EmployeeID != ap.EmployeeID ||
			!other.Date.Equal(ap.Date) ||
			!domain.CountsForConflict(domain.Status(other.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, other.StartTime, other.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.conflict(ap, 0) {
		return httperr.ErrConflict("time_conflict", "The employee already has an appointment in this window.")
	}
	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment, recheckConflict bool) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	if recheckConflict && r.conflict(ap, ap.ID) {
		return httperr.ErrConflict("time_conflict", "The employee already has an appointment in this window.")
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	out := *ap
	return &out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if filter.Date != nil && !ap.Date.Equal(*filter.Date) {
			continue
		}
		if filter.ClientID != nil && ap.ClientID != *filter.ClientID {
			continue
		}
		if filter.EmployeeID != nil && ap.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && ap.Status != string(*filter.Status) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) CountActiveServices(context.Context) (int64, error)  { return 0, nil }
func (r *fakeRepo) CountActiveEmployees(context.Context) (int64, error) { return 0, nil }
func (r *fakeRepo) CountClients(context.Context) (int64, error)         { return 0, nil }

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zap.NewNop())
}

// ======================================================
// SCHEDULE
// ======================================================

func TestScheduleDerivesEndTimeAndSnapshot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), ScheduleInput{
		ClientID:   1,
		EmployeeID: 1,
		ServiceID:  1,
		Date:       "2026-09-01",
		StartTime:  "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.EndTime != "09:45" {
		t.Errorf("EndTime = %q, want 09:45", ap.EndTime)
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Errorf("Status = %q, want scheduled", ap.Status)
	}
	if ap.Total != 150 {
		t.Errorf("Total = %v, want snapshot 150", ap.Total)
	}
	if ap.Reference == "" {
		t.Error("Reference not assigned")
	}
}

func TestScheduleConflictPersistsNothing(t *testing.T) {
	repo := newFakeRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	first := ScheduleInput{
		ClientID: 1, EmployeeID: 1, ServiceID: 1,
		Date: "2026-09-01", StartTime: "09:00",
	}
	if _, err := uc.Execute(context.Background(), first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 09:30 falls inside the existing 09:00-09:45 window.
	second := first
	second.StartTime = "09:30"
	_, err := uc.Execute(context.Background(), second)
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}

	if len(repo.appointments) != 1 {
		t.Errorf("store has %d appointments after rejected booking, want 1", len(repo.appointments))
	}
}

func TestScheduleBackToBackIsAllowed(t *testing.T) {
	repo := newFakeRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	base := ScheduleInput{
		ClientID: 1, EmployeeID: 1, ServiceID: 1,
		Date: "2026-09-01", StartTime: "09:00",
	}
	if _, err := uc.Execute(context.Background(), base); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Starts exactly where the previous one ends.
	next := base
	next.StartTime = "09:45"
	if _, err := uc.Execute(context.Background(), next); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}
}

func TestScheduleIgnoresCancelledSlots(t *testing.T) {
	repo := newFakeRepo()
	schedule := NewScheduleAppointment(repo, testDispatcher())
	cancel := NewCancelAppointment(repo, testDispatcher())

	in := ScheduleInput{
		ClientID: 1, EmployeeID: 1, ServiceID: 1,
		Date: "2026-09-01", StartTime: "09:00",
	}
	ap, err := schedule.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := cancel.Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := schedule.Execute(context.Background(), in); err != nil {
		t.Fatalf("slot freed by cancellation still rejected: %v", err)
	}
}

func TestScheduleValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())
	ctx := context.Background()

	cases := []struct {
		name     string
		in       ScheduleInput
		wantKind httperr.Kind
		wantCode string
	}{
		{
			"missing fields",
			ScheduleInput{ClientID: 1, EmployeeID: 1},
			httperr.KindValidation, "missing_fields",
		},
		{
			"unknown client",
			ScheduleInput{ClientID: 99, EmployeeID: 1, ServiceID: 1, Date: "2026-09-01", StartTime: "09:00"},
			httperr.KindNotFound, "client_not_found",
		},
		{
			"inactive employee",
			ScheduleInput{ClientID: 1, EmployeeID: 2, ServiceID: 1, Date: "2026-09-01", StartTime: "09:00"},
			httperr.KindValidation, "employee_inactive",
		},
		{
			"inactive service",
			ScheduleInput{ClientID: 1, EmployeeID: 1, ServiceID: 3, Date: "2026-09-01", StartTime: "09:00"},
			httperr.KindValidation, "service_inactive",
		},
		{
			"bad time",
			ScheduleInput{ClientID: 1, EmployeeID: 1, ServiceID: 1, Date: "2026-09-01", StartTime: "9am"},
			httperr.KindValidation, "invalid_time",
		},
		{
			"crosses midnight",
			ScheduleInput{ClientID: 1, EmployeeID: 1, ServiceID: 1, Date: "2026-09-01", StartTime: "23:30"},
			httperr.KindValidation, "crosses_midnight",
		},
	}

	for _, tc := range cases {
		_, err := uc.Execute(ctx, tc.in)
		if !httperr.IsKind(err, tc.wantKind) || !httperr.IsCode(err, tc.wantCode) {
			t.Errorf("%s: error = %v, want %s/%s", tc.name, err, tc.wantKind, tc.wantCode)
		}
	}

	if len(repo.appointments) != 0 {
		t.Errorf("store has %d appointments after rejected inputs, want 0", len(repo.appointments))
	}
}

func TestPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	repo := newFakeRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), ScheduleInput{
		ClientID: 1, EmployeeID: 1, ServiceID: 1,
		Date: "2026-09-01", StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	repo.services[1].Price = 400

	got, err := repo.GetAppointment(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Total != 150 {
		t.Errorf("Total = %v after catalog change, want booked 150", got.Total)
	}
}
