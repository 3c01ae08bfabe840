package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studiobella/spa-admin-api/internal/audit"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/httpresp"
	"github.com/studiobella/spa-admin-api/internal/middleware"
	"github.com/studiobella/spa-admin-api/internal/models"
	"github.com/studiobella/spa-admin-api/internal/validators"
)

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewEmployeeHandler(db *gorm.DB, dispatcher *audit.Dispatcher, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: dispatcher, log: log}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name      string `json:"name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	HireDate  string `json:"hire_date"` // YYYY-MM-DD, defaults to today
}

type UpdateEmployeeRequest struct {
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

// List returns active employees by default; ?active=false flips to the
// deactivated ones and ?active=all shows everyone.
func (h *EmployeeHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	switch activeStr {
	case "", "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	case "all":
		// no filter
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(specialty) LIKE ?",
			like, like, like,
		)
	}

	var employees []models.Employee
	if err := q.
		Order("created_at DESC").
		Find(&employees).Error; err != nil {

		h.log.Error("failed to list employees", zap.Error(err))
		httperr.Internal(c, "failed_to_list_employees", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	employee := models.Employee{
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     validators.NormalizeEmail(req.Email),
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    true,
		HireDate:  time.Now(),
	}

	if req.HireDate != "" {
		hired, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_hire_date", "Hire date must be YYYY-MM-DD.")
			return
		}
		employee.HireDate = hired
	}

	if err := h.db.Create(&employee).Error; err != nil {
		h.log.Error("failed to create employee", zap.Error(err))
		httperr.Internal(c, "failed_to_create_employee", "Could not create employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "employee_created",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	httpresp.Created(c, employee)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Surname != nil {
		employee.Surname = *req.Surname
	}
	if req.Email != nil {
		employee.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Specialty != nil {
		employee.Specialty = *req.Specialty
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		h.log.Error("failed to update employee", zap.Error(err))
		httperr.Internal(c, "failed_to_update_employee", "Could not update employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "employee_updated",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	c.JSON(http.StatusOK, employee)
}

// Delete deactivates instead of removing: historical appointments keep a
// valid employee reference, and the employee simply stops being bookable.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	employee.Active = false

	if err := h.db.Save(&employee).Error; err != nil {
		h.log.Error("failed to deactivate employee", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_employee", "Could not deactivate employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "employee_deactivated",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "employee": employee})
}
