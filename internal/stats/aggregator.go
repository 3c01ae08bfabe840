package stats

import (
	"fmt"
	"sort"
	"time"

	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/models"
)

// Pure aggregations over an in-memory appointment collection. Every window
// is computed against the caller-supplied reference instant so tests can pin
// the clock.

type ServiceCount struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type PersonCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DayActivity struct {
	Date             string  `json:"date"`
	AppointmentCount int     `json:"appointment_count"`
	CompletedRevenue float64 `json:"completed_revenue"`
}

func checkDates(appointments []models.Appointment) error {
	for _, ap := range appointments {
		if ap.Date.IsZero() {
			return httperr.ErrValidation(
				"invalid_appointment_date",
				fmt.Sprintf("appointment %d has no date", ap.ID),
			)
		}
	}
	return nil
}

// CountToday counts appointments on now's calendar day, any status.
func CountToday(appointments []models.Appointment, now time.Time) (int, error) {
	if err := checkDates(appointments); err != nil {
		return 0, err
	}

	count := 0
	for _, ap := range appointments {
		if sameDay(ap.Date, now) {
			count++
		}
	}
	return count, nil
}

// UniqueClientsToday counts distinct clients with an appointment today.
func UniqueClientsToday(appointments []models.Appointment, now time.Time) (int, error) {
	if err := checkDates(appointments); err != nil {
		return 0, err
	}

	seen := map[uint]struct{}{}
	for _, ap := range appointments {
		if sameDay(ap.Date, now) {
			seen[ap.ClientID] = struct{}{}
		}
	}
	return len(seen), nil
}

// CountPending counts scheduled or confirmed appointments dated today or
// later. Past-dated bookings that were never resolved stay out on purpose.
func CountPending(appointments []models.Appointment, now time.Time) (int, error) {
	if err := checkDates(appointments); err != nil {
		return 0, err
	}

	today := dayKey(now)
	count := 0
	for _, ap := range appointments {
		if domain.IsPending(domain.Status(ap.Status)) && !dayKey(ap.Date).Before(today) {
			count++
		}
	}
	return count, nil
}

// MonthlyRevenue sums the stored price snapshots of completed appointments in
// now's calendar month. The live service price never participates.
func MonthlyRevenue(appointments []models.Appointment, now time.Time) (float64, error) {
	if err := checkDates(appointments); err != nil {
		return 0, err
	}

	var revenue float64
	for _, ap := range appointments {
		if domain.Status(ap.Status) == domain.StatusCompleted && sameMonth(ap.Date, now) {
			revenue += ap.Total
		}
	}
	return revenue, nil
}

// StatusBreakdown maps each status to its count for now's month. The map is
// dense: every known status appears, zero counts included.
func StatusBreakdown(appointments []models.Appointment, now time.Time) (map[domain.Status]int, error) {
	if err := checkDates(appointments); err != nil {
		return nil, err
	}

	breakdown := make(map[domain.Status]int, len(domain.All()))
	for _, s := range domain.All() {
		breakdown[s] = 0
	}

	for _, ap := range appointments {
		if !sameMonth(ap.Date, now) {
			continue
		}
		if s, err := domain.ParseStatus(ap.Status); err == nil {
			breakdown[s]++
		}
	}
	return breakdown, nil
}

// TopServices ranks services by completed appointments in now's month.
// Ties break on ascending service id so the ranking is deterministic.
func TopServices(appointments []models.Appointment, now time.Time, n int) ([]ServiceCount, error) {
	if err := checkDates(appointments); err != nil {
		return nil, err
	}

	counts := map[uint]*ServiceCount{}
	for _, ap := range appointments {
		if domain.Status(ap.Status) != domain.StatusCompleted || !sameMonth(ap.Date, now) {
			continue
		}
		sc, ok := counts[ap.ServiceID]
		if !ok {
			sc = &ServiceCount{ServiceID: ap.ServiceID, Name: ap.Service.Name}
			counts[ap.ServiceID] = sc
		}
		sc.Count++
	}

	return rankServices(counts, n), nil
}

func rankServices(counts map[uint]*ServiceCount, n int) []ServiceCount {
	ranked := make([]ServiceCount, 0, len(counts))
	for _, sc := range counts {
		ranked = append(ranked, *sc)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ServiceID < ranked[j].ServiceID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DailyActivity builds the dense 7-day series ending today: per calendar day,
// the all-status appointment count and the completed-only revenue. Days with
// no appointments still appear with zeros.
func DailyActivity(appointments []models.Appointment, now time.Time) ([]DayActivity, error) {
	if err := checkDates(appointments); err != nil {
		return nil, err
	}

	days := last7Days(now)
	series := make([]DayActivity, len(days))
	index := make(map[time.Time]int, len(days))
	for i, day := range days {
		series[i] = DayActivity{Date: day.Format("2006-01-02")}
		index[day] = i
	}

	for _, ap := range appointments {
		i, ok := index[dayKey(ap.Date)]
		if !ok {
			continue
		}
		series[i].AppointmentCount++
		if domain.Status(ap.Status) == domain.StatusCompleted {
			series[i].CompletedRevenue += ap.Total
		}
	}
	return series, nil
}

// TopClients ranks clients by completed appointments across all time.
func TopClients(appointments []models.Appointment, n int) ([]PersonCount, error) {
	if err := checkDates(appointments); err != nil {
		return nil, err
	}

	return rankPeople(appointments, n, func(ap models.Appointment) (uint, string) {
		return ap.ClientID, fullName(ap.Client.Name, ap.Client.Surname)
	}), nil
}

// TopEmployees ranks employees by completed appointments across all time.
func TopEmployees(appointments []models.Appointment, n int) ([]PersonCount, error) {
	if err := checkDates(appointments); err != nil {
		return nil, err
	}

	return rankPeople(appointments, n, func(ap models.Appointment) (uint, string) {
		return ap.EmployeeID, fullName(ap.Employee.Name, ap.Employee.Surname)
	}), nil
}

func rankPeople(
	appointments []models.Appointment,
	n int,
	key func(models.Appointment) (uint, string),
) []PersonCount {

	counts := map[uint]*PersonCount{}
	for _, ap := range appointments {
		if domain.Status(ap.Status) != domain.StatusCompleted {
			continue
		}
		id, name := key(ap)
		pc, ok := counts[id]
		if !ok {
			pc = &PersonCount{ID: id, Name: name}
			counts[id] = pc
		}
		pc.Count++
	}

	ranked := make([]PersonCount, 0, len(counts))
	for _, pc := range counts {
		ranked = append(ranked, *pc)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func fullName(name, surname string) string {
	if surname == "" {
		return name
	}
	return name + " " + surname
}
