package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studiobella/spa-admin-api/internal/audit"
	"github.com/studiobella/spa-admin-api/internal/httperr"
	"github.com/studiobella/spa-admin-api/internal/httpresp"
	"github.com/studiobella/spa-admin-api/internal/middleware"
	"github.com/studiobella/spa-admin-api/internal/models"
)

type CategoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCategoryHandler(db *gorm.DB, dispatcher *audit.Dispatcher, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{db: db, audit: dispatcher, log: log}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type categoryWithCount struct {
	models.Category
	ServiceCount int64 `json:"service_count"`
}

// --------- Handlers ---------

func (h *CategoryHandler) List(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})

	if c.Query("active") != "all" {
		q = q.Where("active = ?", true)
	}

	var categories []models.Category
	if err := q.
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {

		h.log.Error("failed to list categories", zap.Error(err))
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	out := make([]categoryWithCount, 0, len(categories))
	for _, cat := range categories {
		var count int64
		h.db.Model(&models.Service{}).Where("category_id = ?", cat.ID).Count(&count)
		out = append(out, categoryWithCount{Category: cat, ServiceCount: count})
	}

	httpresp.List(c, out)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "category_name_taken", "A category with this name already exists.")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		Active:      true,
	}
	if category.Color == "" {
		category.Color = "gray"
	}

	if err := h.db.Create(&category).Error; err != nil {
		h.log.Error("failed to create category", zap.Error(err))
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "category_created",
		Entity:   "category",
		EntityID: &category.ID,
	})

	httpresp.Created(c, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var count int64
	h.db.Model(&models.Service{}).Where("category_id = ?", category.ID).Count(&count)

	c.JSON(http.StatusOK, categoryWithCount{Category: category, ServiceCount: count})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil && *req.Name != category.Name {
		var count int64
		h.db.Model(&models.Category{}).Where("name = ?", *req.Name).Count(&count)
		if count > 0 {
			httperr.BadRequest(c, "category_name_taken", "A category with this name already exists.")
			return
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := h.db.Save(&category).Error; err != nil {
		h.log.Error("failed to update category", zap.Error(err))
		httperr.Internal(c, "failed_to_update_category", "Could not update category.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "category_updated",
		Entity:   "category",
		EntityID: &category.ID,
	})

	c.JSON(http.StatusOK, category)
}

// Delete deactivates a category, and refuses while any service still points
// at it: categories referenced by the catalog are protected, not cascaded.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var serviceCount int64
	h.db.Model(&models.Service{}).Where("category_id = ?", category.ID).Count(&serviceCount)
	if serviceCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error_code":    "category_in_use",
			"message":       "The category still has services attached to it.",
			"service_count": serviceCount,
		})
		return
	}

	category.Active = false

	if err := h.db.Save(&category).Error; err != nil {
		h.log.Error("failed to deactivate category", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_category", "Could not deactivate category.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserIDPtr(c),
		Action:   "category_deactivated",
		Entity:   "category",
		EntityID: &category.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}
