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

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewClientHandler(db *gorm.DB, dispatcher *audit.Dispatcher, log *zap.Logger) *ClientHandler {
	return &ClientHandler{db: db, audit: dispatcher, log: log}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Notes     string `json:"notes"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		h.log.Error("failed to list clients", zap.Error(err))
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client := models.Client{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   validators.NormalizeEmail(req.Email),
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Birth date must be YYYY-MM-DD.")
			return
		}
		client.BirthDate = &birth
	}

	if err := h.db.Create(&client).Error; err != nil {
		h.log.Error("failed to create client", zap.Error(err))
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Surname != nil {
		client.Surname = *req.Surname
	}
	if req.Email != nil {
		client.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			client.BirthDate = nil
		} else {
			birth, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				httperr.BadRequest(c, "invalid_birth_date", "Birth date must be YYYY-MM-DD.")
				return
			}
			client.BirthDate = &birth
		}
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.Save(&client).Error; err != nil {
		h.log.Error("failed to update client", zap.Error(err))
		httperr.Internal(c, "failed_to_update_client", "Could not update client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusOK, client)
}

// Delete removes the client row itself. Historical appointments keep their
// client_id reference (SET NULL on the FK), matching the console's behavior.
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		h.log.Error("failed to delete client", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_client", "Could not delete client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
