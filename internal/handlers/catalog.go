package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook/internal/models"
	"medibook/internal/utils"
)

// CatalogHandler serves the read-only service and location lists.
type CatalogHandler struct {
	DB *gorm.DB
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{DB: db}
}

// GetServices lists bookable services in catalog order.
func (h *CatalogHandler) GetServices(c *gin.Context) {
	services := make([]models.Service, 0)
	if err := h.DB.WithContext(c.Request.Context()).Order("id").Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch services", err)
		return
	}
	utils.Success(c, services)
}

// GetLocations lists clinic locations by name.
func (h *CatalogHandler) GetLocations(c *gin.Context) {
	locations := make([]models.Location, 0)
	if err := h.DB.WithContext(c.Request.Context()).Order("name").Find(&locations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch locations", err)
		return
	}
	utils.Success(c, locations)
}
