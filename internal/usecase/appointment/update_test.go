package appointment

import (
	"context"
	"testing"

	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/models"
)

func bookFixture(t *testing.T, repo *fakeRepo, start string) *models.Appointment {
	t.Helper()

	uc := NewScheduleAppointment(repo, testDispatcher())
	ap, err := uc.Execute(context.Background(), ScheduleInput{
		ClientID: 1, EmployeeID: 1, ServiceID: 1,
		Date: "2026-09-01", StartTime: start,
	})
	if err != nil {
		t.Fatalf("fixture booking failed: %v", err)
	}
	return ap
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }

func TestUpdateMovesStartAndRechecksConflict(t *testing.T) {
	repo := newFakeRepo()
	bookFixture(t, repo, "09:00")           // 09:00-09:45
	second := bookFixture(t, repo, "11:00") // 11:00-11:45

	uc := NewUpdateAppointment(repo, testDispatcher())

	// Moving the second booking onto the first must be rejected.
	_, err := uc.Execute(context.Background(), second.ID, UpdateInput{
		StartTime: strPtr("09:15"),
	})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}

	// The rejected move left the stored record untouched.
	stored, _ := repo.GetAppointment(context.Background(), second.ID)
	if stored.StartTime != "11:00" {
		t.Errorf("StartTime = %q after rejected move, want 11:00", stored.StartTime)
	}

	// A free slot works.
	moved, err := uc.Execute(context.Background(), second.ID, UpdateInput{
		StartTime: strPtr("13:00"),
	})
	if err != nil {
		t.Fatalf("legitimate move failed: %v", err)
	}
	if moved.StartTime != "13:00" {
		t.Errorf("StartTime = %q, want 13:00", moved.StartTime)
	}
}

func TestUpdateServiceSwapRederivesEndAndTotal(t *testing.T) {
	repo := newFakeRepo()
	ap := bookFixture(t, repo, "09:00") // service 1: 45min, 150

	uc := NewUpdateAppointment(repo, testDispatcher())

	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		ServiceID: uintPtr(2), // 30min, 80
	})
	if err != nil {
		t.Fatalf("service swap failed: %v", err)
	}

	if got.EndTime != "09:30" {
		t.Errorf("EndTime = %q, want rederived 09:30", got.EndTime)
	}
	if got.Total != 80 {
		t.Errorf("Total = %v, want new snapshot 80", got.Total)
	}
}

func TestUpdateSameServiceKeepsEndAndTotal(t *testing.T) {
	repo := newFakeRepo()
	ap := bookFixture(t, repo, "09:00")

	uc := NewUpdateAppointment(repo, testDispatcher())

	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		Notes: strPtr("bring aromatherapy oils"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got.EndTime != "09:45" || got.Total != 150 {
		t.Errorf("EndTime/Total = %q/%v, want unchanged 09:45/150", got.EndTime, got.Total)
	}
	if got.Notes != "bring aromatherapy oils" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestUpdateStatusTransitionStampsCompletedAt(t *testing.T) {
	repo := newFakeRepo()
	ap := bookFixture(t, repo, "09:00")

	uc := NewUpdateAppointment(repo, testDispatcher())

	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		Status: strPtr("completed"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got.Status != string(domain.StatusCompleted) {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}
}

func TestUpdateToCancelledSkipsConflictScan(t *testing.T) {
	repo := newFakeRepo()
	bookFixture(t, repo, "09:00")
	second := bookFixture(t, repo, "11:00")

	uc := NewUpdateAppointment(repo, testDispatcher())

	// Moving onto an occupied slot while cancelling must succeed: a
	// cancelled booking holds no slot.
	got, err := uc.Execute(context.Background(), second.ID, UpdateInput{
		StartTime: strPtr("09:15"),
		Status:    strPtr("cancelled"),
	})
	if err != nil {
		t.Fatalf("cancelling move failed: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("Status = %q, want cancelled", got.Status)
	}
}

func TestUpdateRejectsUnknownStatusAndService(t *testing.T) {
	repo := newFakeRepo()
	ap := bookFixture(t, repo, "09:00")

	uc := NewUpdateAppointment(repo, testDispatcher())

	if _, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		Status: strPtr("rescheduled"),
	}); !httperr.IsCode(err, "invalid_status") {
		t.Errorf("status error = %v, want invalid_status", err)
	}

	if _, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		ServiceID: uintPtr(99),
	}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Errorf("service error = %v, want not found", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	ap := bookFixture(t, repo, "09:00")

	uc := NewCancelAppointment(repo, testDispatcher())

	first, err := uc.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if first.Status != string(domain.StatusCancelled) || first.CancelledAt == nil {
		t.Fatalf("first cancel = %q / %v", first.Status, first.CancelledAt)
	}

	second, err := uc.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("repeat cancel failed: %v", err)
	}
	if !second.CancelledAt.Equal(*first.CancelledAt) {
		t.Errorf("repeat cancel moved CancelledAt from %v to %v", first.CancelledAt, second.CancelledAt)
	}
}

func TestCancelUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelAppointment(repo, testDispatcher())

	if _, err := uc.Execute(context.Background(), 404); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}
