package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studiobella/spa-admin-api/internal/cache"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/stats"
)

// DashboardCacheKey is shared with the write paths, which drop the cached
// payload whenever an appointment changes.
const DashboardCacheKey = "stats:dashboard"

const topN = 5

// Dashboard is the aggregated payload behind GET /api/stats, mirroring the
// console's landing page.
type Dashboard struct {
	AppointmentsToday  int     `json:"appointments_today"`
	UniqueClientsToday int     `json:"unique_clients_today"`
	PendingCount       int     `json:"pending_count"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`

	ActiveServices  int64 `json:"active_services"`
	ActiveEmployees int64 `json:"active_employees"`
	TotalClients    int64 `json:"total_clients"`

	StatusBreakdown map[domain.Status]int `json:"status_breakdown"`
	TopServices     []stats.ServiceCount  `json:"top_services"`
	TopClients      []stats.PersonCount   `json:"top_clients"`
	TopEmployees    []stats.PersonCount   `json:"top_employees"`
	DailyActivity   []stats.DayActivity   `json:"daily_activity"`
}

type GetDashboard struct {
	repo  domain.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewGetDashboard(
	repo domain.Repository,
	c *cache.Cache,
	log *zap.Logger,
) *GetDashboard {
	return &GetDashboard{
		repo:  repo,
		cache: c,
		log:   log,
	}
}

// Execute aggregates every metric window against the supplied reference
// instant. Cache reads and writes are best effort only.
func (uc *GetDashboard) Execute(
	ctx context.Context,
	now time.Time,
) (*Dashboard, error) {

	var cached Dashboard
	if hit, err := uc.cache.GetJSON(ctx, DashboardCacheKey, &cached); err != nil {
		uc.log.Warn("dashboard cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}

	if d.AppointmentsToday, err = stats.CountToday(appointments, now); err != nil {
		return nil, err
	}
	if d.UniqueClientsToday, err = stats.UniqueClientsToday(appointments, now); err != nil {
		return nil, err
	}
	if d.PendingCount, err = stats.CountPending(appointments, now); err != nil {
		return nil, err
	}
	if d.MonthlyRevenue, err = stats.MonthlyRevenue(appointments, now); err != nil {
		return nil, err
	}
	if d.StatusBreakdown, err = stats.StatusBreakdown(appointments, now); err != nil {
		return nil, err
	}
	if d.TopServices, err = stats.TopServices(appointments, now, topN); err != nil {
		return nil, err
	}
	if d.TopClients, err = stats.TopClients(appointments, topN); err != nil {
		return nil, err
	}
	if d.TopEmployees, err = stats.TopEmployees(appointments, topN); err != nil {
		return nil, err
	}
	if d.DailyActivity, err = stats.DailyActivity(appointments, now); err != nil {
		return nil, err
	}

	if d.ActiveServices, err = uc.repo.CountActiveServices(ctx); err != nil {
		return nil, err
	}
	if d.ActiveEmployees, err = uc.repo.CountActiveEmployees(ctx); err != nil {
		return nil, err
	}
	if d.TotalClients, err = uc.repo.CountClients(ctx); err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, DashboardCacheKey, d); err != nil {
		uc.log.Warn("dashboard cache write failed", zap.Error(err))
	}

	return d, nil
}
