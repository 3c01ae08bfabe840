package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studiobella/spa-admin-api/internal/cache"
	domain "github.com/studiobella/spa-admin-api/internal/domain/appointment"
	"github.com/studiobella/spa-admin-api/internal/dto"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/httpresp"
	ucAppointment "github.com/studiobella/spa-admin-api/internal/usecase/appointment"
	ucStats "github.com/studiobella/spa-admin-api/internal/usecase/stats"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	scheduleUC *ucAppointment.ScheduleAppointment
	updateUC   *ucAppointment.UpdateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	queryUC    *ucAppointment.QueryAppointments
	cache      *cache.Cache
	log        *zap.Logger
}

func NewAppointmentHandler(
	scheduleUC *ucAppointment.ScheduleAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	queryUC *ucAppointment.QueryAppointments,
	c *cache.Cache,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		scheduleUC: scheduleUC,
		updateUC:   updateUC,
		cancelUC:   cancelUC,
		queryUC:    queryUC,
		cache:      c,
		log:        log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
	Notes      string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientID   *uint    `json:"client_id,omitempty"`
	EmployeeID *uint    `json:"employee_id,omitempty"`
	ServiceID  *uint    `json:"service_id,omitempty"`
	Date       *string  `json:"date,omitempty"`
	StartTime  *string  `json:"start_time,omitempty"`
	EndTime    *string  `json:"end_time,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Total      *float64 `json:"total,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.scheduleUC.Execute(c.Request.Context(), ucAppointment.ScheduleInput{
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
	})
	if err != nil {
		h.fail(c, "schedule appointment", err)
		return
	}

	h.dropStatsCache(c)

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var filter domain.ListFilter

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		filter.Date = &date
	}

	if clientStr := c.Query("client_id"); clientStr != "" {
		id, err := strconv.ParseUint(clientStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "client_id must be numeric.")
			return
		}
		clientID := uint(id)
		filter.ClientID = &clientID
	}

	if employeeStr := c.Query("employee_id"); employeeStr != "" {
		id, err := strconv.ParseUint(employeeStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "employee_id must be numeric.")
			return
		}
		employeeID := uint(id)
		filter.EmployeeID = &employeeID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := domain.ParseStatus(statusStr)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		filter.Status = &status
	}

	appointments, err := h.queryUC.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list appointments", err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentToListDTO(ap))
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ap, err := h.queryUC.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get appointment", err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, ucAppointment.UpdateInput{
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     req.Status,
		Notes:      req.Notes,
		Total:      req.Total,
	})
	if err != nil {
		h.fail(c, "update appointment", err)
		return
	}

	h.dropStatsCache(c)

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL (soft delete)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "cancel appointment", err)
		return
	}

	h.dropStatsCache(c)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment cancelled.",
		"appointment": ap,
	})
}

// ======================================================
// HELPERS
// ======================================================

// dropStatsCache evicts the cached dashboard after a booking change. Best
// effort; a failed eviction just means the cache expires on its own.
func (h *AppointmentHandler) dropStatsCache(c *gin.Context) {
	if err := h.cache.Invalidate(c.Request.Context(), ucStats.DashboardCacheKey); err != nil {
		h.log.Warn("failed to evict stats cache", zap.Error(err))
	}
}

func (h *AppointmentHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return 0, false
	}
	return uint(id), true
}

// fail maps business errors to their status and hides store detail behind a
// generic message, logging the original error.
func (h *AppointmentHandler) fail(c *gin.Context, op string, err error) {
	var isBusiness bool
	for _, kind := range []httperr.Kind{httperr.KindValidation, httperr.KindNotFound, httperr.KindConflict} {
		if httperr.IsKind(err, kind) {
			isBusiness = true
			break
		}
	}

	if !isBusiness {
		h.log.Error("appointment store failure",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	httperr.FromError(c, err)
}
