package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/importer"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
)

// CredentialHandler binds credential payloads onto the shared resource core
// and adds spreadsheet bulk import.
type CredentialHandler struct {
	*Resource[models.Credential, *models.Credential]
}

func NewCredentialHandler(
	repo *repository.Repository[models.Credential, *models.Credential],
	pub *events.Publisher,
	log logger.Logger,
) *CredentialHandler {
	return &CredentialHandler{Resource: NewResource(repo, pub, log)}
}

type credentialPayload struct {
	Title         string     `json:"title" binding:"required"`
	Issuer        string     `json:"issuer" binding:"required"`
	Description   string     `json:"description"`
	Skills        []string   `json:"skills"`
	IssuedAt      time.Time  `json:"issued_at" binding:"required"`
	ExpiresAt     *time.Time `json:"expires_at"`
	CredentialURL string     `json:"credential_url"`
	Featured      bool       `json:"featured"`
}

type credentialPatch struct {
	Title         *string    `json:"title"`
	Issuer        *string    `json:"issuer"`
	Description   *string    `json:"description"`
	Skills        *[]string  `json:"skills"`
	IssuedAt      *time.Time `json:"issued_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	CredentialURL *string    `json:"credential_url"`
	Featured      *bool      `json:"featured"`
}

// credentialStatus derives the validity state from the expiry window.
func credentialStatus(expiresAt *time.Time) models.CredentialStatus {
	if expiresAt != nil && time.Now().After(*expiresAt) {
		return models.CredentialExpired
	}
	return models.CredentialValid
}

func (h *CredentialHandler) Create(c *gin.Context) {
	var payload credentialPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if payload.ExpiresAt != nil && !payload.ExpiresAt.After(payload.IssuedAt) {
		respondError(c, h.logger, apperrors.Validation("expires_at", "expiry must be after issue date"))
		return
	}

	credential := models.Credential{
		Issuer:        payload.Issuer,
		Description:   payload.Description,
		Skills:        payload.Skills,
		IssuedAt:      payload.IssuedAt,
		ExpiresAt:     payload.ExpiresAt,
		CredentialURL: payload.CredentialURL,
		Status:        credentialStatus(payload.ExpiresAt),
	}
	credential.Title = payload.Title
	credential.Featured = payload.Featured

	h.create(c, &credential)
}

func (h *CredentialHandler) Update(c *gin.Context) {
	var patch credentialPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(cr *models.Credential) error {
		if patch.Title != nil {
			cr.Title = *patch.Title
		}
		if patch.Issuer != nil {
			cr.Issuer = *patch.Issuer
		}
		if patch.Description != nil {
			cr.Description = *patch.Description
		}
		if patch.Skills != nil {
			cr.Skills = *patch.Skills
		}
		if patch.IssuedAt != nil {
			cr.IssuedAt = *patch.IssuedAt
		}
		if patch.ExpiresAt != nil {
			cr.ExpiresAt = patch.ExpiresAt
		}
		if patch.Featured != nil {
			cr.Featured = *patch.Featured
		}
		if patch.CredentialURL != nil {
			cr.CredentialURL = *patch.CredentialURL
		}

		if cr.ExpiresAt != nil && !cr.ExpiresAt.After(cr.IssuedAt) {
			return apperrors.Validation("expires_at", "expiry must be after issue date")
		}
		cr.Status = credentialStatus(cr.ExpiresAt)
		return nil
	})
}

// Import bulk-creates credentials from an uploaded .xlsx workbook. Valid
// rows are created; invalid rows are reported back per row.
func (h *CredentialHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing upload file", "details": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable upload file"})
		return
	}
	defer file.Close()

	parsed, rowErrors, err := importer.ParseCredentials(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workbook", "details": err.Error()})
		return
	}

	// A failed create must not abort the batch: earlier rows are already
	// persisted, so the failure is reported per row like a parse error.
	imported := 0
	for i := range parsed {
		if _, createErr := h.repo.Create(c.Request.Context(), &parsed[i].Credential); createErr != nil {
			h.logger.Error("Credential create failed during import",
				logger.Int("row", parsed[i].Row),
				logger.Error(createErr),
			)
			rowErrors = append(rowErrors, importer.RowError{
				Row:   parsed[i].Row,
				Error: "create failed: " + createErr.Error(),
			})
			continue
		}
		imported++
	}

	h.logger.Info("Credentials imported",
		logger.Int("imported", imported),
		logger.Int("rejected", len(rowErrors)),
	)

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"errors":   rowErrors,
	})
}
