package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
)

// ProfileHandler serves the singleton profile: public read, admin update.
type ProfileHandler struct {
	repo   *repository.ProfileRepository
	pub    *events.Publisher
	logger logger.Logger
}

func NewProfileHandler(repo *repository.ProfileRepository, pub *events.Publisher, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		repo:   repo,
		pub:    pub,
		logger: log,
	}
}

type profilePatch struct {
	Name     *string             `json:"name"`
	Headline *string             `json:"headline"`
	Bio      *string             `json:"bio"`
	Email    *string             `json:"email"`
	Phone    *string             `json:"phone"`
	Location *string             `json:"location"`
	Skills   *[]string           `json:"skills"`
	Social   *models.SocialLinks `json:"social"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, backend, err := h.repo.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setBackend(c, backend)
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var patch profilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, backend, err := h.repo.Update(c.Request.Context(), func(p *models.Profile) error {
		if patch.Name != nil {
			p.Title = *patch.Name
		}
		if patch.Headline != nil {
			p.Headline = *patch.Headline
		}
		if patch.Bio != nil {
			p.Bio = *patch.Bio
		}
		if patch.Email != nil {
			p.Email = *patch.Email
		}
		if patch.Phone != nil {
			p.Phone = *patch.Phone
		}
		if patch.Location != nil {
			p.Location = *patch.Location
		}
		if patch.Skills != nil {
			p.Skills = *patch.Skills
		}
		if patch.Social != nil {
			p.Social = *patch.Social
		}
		return nil
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.pub.PublishAsync(events.ContentEvent{
		EventType:  events.ContentUpdated,
		Collection: models.ProfileDescriptor.Collection,
		RecordID:   profile.ID,
		Backend:    string(backend),
	})

	setBackend(c, backend)
	c.JSON(http.StatusOK, profile)
}
