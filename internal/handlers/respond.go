// Package handlers implements the HTTP surface over the entity
// repositories: a generic resource handler shared by every collection plus
// per-entity payload binding and the article, profile, import, and metadata
// specifics.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/query"
	"github.com/jonesrussell/content-manager/internal/store"
)

// BackendHeader reports which backend served the request, so clients can
// show degraded-mode UI without polling hidden state.
const BackendHeader = "X-Content-Backend"

func setBackend(c *gin.Context, backend store.Backend) {
	if backend != "" {
		c.Header(BackendHeader, string(backend))
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Validation and
// not-found pass their message through; storage failures are logged and kept
// opaque.
func respondError(c *gin.Context, log logger.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		log.Error("Storage failure", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure"})
	}
}

// parseOptions builds query options from URL parameters. Only facet keys the
// descriptor declares are read, so an undeclared filter never silently
// matches nothing.
func parseOptions[T any](c *gin.Context, desc *models.Descriptor[T]) query.Options {
	opts := query.Options{
		Search:       c.Query("search"),
		SortKey:      c.Query("sort"),
		FeaturedOnly: c.Query("featured") == "true",
		Facets:       make(map[string]string),
	}
	for key := range desc.Facets {
		if value, ok := c.GetQuery(key); ok {
			opts.Facets[key] = value
		}
	}
	return opts
}
