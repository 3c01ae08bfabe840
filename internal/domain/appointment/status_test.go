package appointment

import (
	"testing"
	"time"

	"github.com/studiobella/spa-admin-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range All() {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, bad := range []string{"", "done", "SCHEDULED", "canceled"} {
		if _, err := ParseStatus(bad); err == nil {
			t.Errorf("ParseStatus(%q) expected error", bad)
		}
	}
}

func TestIsPending(t *testing.T) {
	want := map[Status]bool{
		StatusScheduled: true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
		StatusNoShow:    false,
	}
	for s, w := range want {
		if got := IsPending(s); got != w {
			t.Errorf("IsPending(%q) = %v, want %v", s, got, w)
		}
	}
}

func TestCountsForConflict(t *testing.T) {
	for _, s := range All() {
		want := s != StatusCancelled
		if got := CountsForConflict(s); got != want {
			t.Errorf("CountsForConflict(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	Cancel(ap, now)

	if ap.Status != string(StatusCancelled) {
		t.Fatalf("status = %q, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("CancelledAt = %v, want %v", ap.CancelledAt, now)
	}

	later := now.Add(2 * time.Hour)
	Cancel(ap, later)

	if !ap.CancelledAt.Equal(now) {
		t.Errorf("second cancel moved CancelledAt to %v, want original %v", ap.CancelledAt, now)
	}
}

func TestApplyStatusStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	ApplyStatus(ap, StatusCompleted, now)
	if ap.Status != string(StatusCompleted) {
		t.Errorf("status = %q, want completed", ap.Status)
	}
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", ap.CompletedAt, now)
	}

	// A repeated transition keeps the original stamp.
	later := now.Add(time.Hour)
	ApplyStatus(ap, StatusCompleted, later)
	if !ap.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt moved to %v, want %v", ap.CompletedAt, now)
	}

	// Plain transitions do not stamp anything.
	ap2 := &models.Appointment{Status: string(StatusScheduled)}
	ApplyStatus(ap2, StatusConfirmed, now)
	if ap2.CompletedAt != nil || ap2.CancelledAt != nil {
		t.Errorf("confirm stamped timestamps: %v %v", ap2.CompletedAt, ap2.CancelledAt)
	}
}
