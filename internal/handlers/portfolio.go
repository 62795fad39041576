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

// PortfolioHandler binds portfolio payloads onto the shared resource core.
type PortfolioHandler struct {
	*Resource[models.PortfolioEntry, *models.PortfolioEntry]
}

func NewPortfolioHandler(
	repo *repository.Repository[models.PortfolioEntry, *models.PortfolioEntry],
	pub *events.Publisher,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{Resource: NewResource(repo, pub, log)}
}

type portfolioPayload struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Tech        []string               `json:"tech"`
	RepoURL     string                 `json:"repo_url"`
	DemoURL     string                 `json:"demo_url"`
	ImageURL    string                 `json:"image_url"`
	Status      models.PortfolioStatus `json:"status"`
	Featured    bool                   `json:"featured"`
}

type portfolioPatch struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Tech        *[]string               `json:"tech"`
	RepoURL     *string                 `json:"repo_url"`
	DemoURL     *string                 `json:"demo_url"`
	ImageURL    *string                 `json:"image_url"`
	Status      *models.PortfolioStatus `json:"status"`
	Featured    *bool                   `json:"featured"`
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var payload portfolioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if payload.Status == "" {
		payload.Status = models.PortfolioDraft
	}
	if !payload.Status.Valid() {
		respondError(c, h.logger, apperrors.Validation("status", "unknown portfolio status"))
		return
	}

	entry := models.PortfolioEntry{
		Description: payload.Description,
		Tech:        payload.Tech,
		RepoURL:     payload.RepoURL,
		DemoURL:     payload.DemoURL,
		ImageURL:    payload.ImageURL,
		Status:      payload.Status,
	}
	entry.Title = payload.Title
	entry.Featured = payload.Featured

	h.create(c, &entry)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var patch portfolioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(p *models.PortfolioEntry) error {
		if patch.Status != nil && !patch.Status.Valid() {
			return apperrors.Validation("status", "unknown portfolio status")
		}

		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Tech != nil {
			p.Tech = *patch.Tech
		}
		if patch.RepoURL != nil {
			p.RepoURL = *patch.RepoURL
		}
		if patch.DemoURL != nil {
			p.DemoURL = *patch.DemoURL
		}
		if patch.ImageURL != nil {
			p.ImageURL = *patch.ImageURL
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		return nil
	})
}
