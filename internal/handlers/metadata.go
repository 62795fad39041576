package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/metadata"
)

// MetadataHandler exposes URL metadata extraction for admin form prefilling.
type MetadataHandler struct {
	extractor *metadata.Extractor
	logger    logger.Logger
}

func NewMetadataHandler(extractor *metadata.Extractor, log logger.Logger) *MetadataHandler {
	return &MetadataHandler{
		extractor: extractor,
		logger:    log,
	}
}

func (h *MetadataHandler) Extract(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	meta, err := h.extractor.Extract(c.Request.Context(), pageURL)
	if err != nil {
		h.logger.Debug("Metadata extraction failed",
			logger.String("url", pageURL),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Metadata extraction failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meta)
}
