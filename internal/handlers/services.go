package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
)

// ServiceHandler binds service-listing payloads onto the shared resource core.
type ServiceHandler struct {
	*Resource[models.ServiceListing, *models.ServiceListing]
}

func NewServiceHandler(
	repo *repository.Repository[models.ServiceListing, *models.ServiceListing],
	pub *events.Publisher,
	log logger.Logger,
) *ServiceHandler {
	return &ServiceHandler{Resource: NewResource(repo, pub, log)}
}

type servicePayload struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Deliverables []string             `json:"deliverables"`
	PriceRange   string               `json:"price_range"`
	Status       models.ServiceStatus `json:"status"`
	Featured     bool                 `json:"featured"`
}

type servicePatch struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Category     *string               `json:"category"`
	Deliverables *[]string             `json:"deliverables"`
	PriceRange   *string               `json:"price_range"`
	Status       *models.ServiceStatus `json:"status"`
	Featured     *bool                 `json:"featured"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var payload servicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if payload.Status == "" {
		payload.Status = models.ServiceActive
	}
	if !payload.Status.Valid() {
		respondError(c, h.logger, apperrors.Validation("status", "unknown service status"))
		return
	}

	listing := models.ServiceListing{
		Description:  payload.Description,
		Category:     payload.Category,
		Deliverables: payload.Deliverables,
		PriceRange:   payload.PriceRange,
		Status:       payload.Status,
	}
	listing.Title = payload.Title
	listing.Featured = payload.Featured

	h.create(c, &listing)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var patch servicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(s *models.ServiceListing) error {
		if patch.Status != nil && !patch.Status.Valid() {
			return apperrors.Validation("status", "unknown service status")
		}

		if patch.Title != nil {
			s.Title = *patch.Title
		}
		if patch.Description != nil {
			s.Description = *patch.Description
		}
		if patch.Category != nil {
			s.Category = *patch.Category
		}
		if patch.Deliverables != nil {
			s.Deliverables = *patch.Deliverables
		}
		if patch.PriceRange != nil {
			s.PriceRange = *patch.PriceRange
		}
		if patch.Status != nil {
			s.Status = *patch.Status
		}
		if patch.Featured != nil {
			s.Featured = *patch.Featured
		}
		return nil
	})
}
