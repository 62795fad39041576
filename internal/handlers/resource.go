package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/query"
	"github.com/jonesrussell/content-manager/internal/repository"
)

// Resource is the collection-agnostic handler core. Per-entity handlers
// embed it and add payload binding for create/update.
type Resource[T any, PT models.RecordOf[T]] struct {
	repo   *repository.Repository[T, PT]
	pub    *events.Publisher
	logger logger.Logger
}

// NewResource builds the shared handler core for a collection.
func NewResource[T any, PT models.RecordOf[T]](
	repo *repository.Repository[T, PT],
	pub *events.Publisher,
	log logger.Logger,
) *Resource[T, PT] {
	return &Resource[T, PT]{
		repo:   repo,
		pub:    pub,
		logger: log.With(logger.String("collection", repo.Descriptor().Collection)),
	}
}

// List materializes the collection and applies the query layer to it.
func (h *Resource[T, PT]) List(c *gin.Context) {
	items, backend, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	opts := parseOptions(c, h.repo.Descriptor())
	filtered, err := query.Apply[T, PT](items, h.repo.Descriptor(), opts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setBackend(c, backend)
	c.JSON(http.StatusOK, gin.H{
		"items":   filtered,
		"count":   len(filtered),
		"backend": backend,
	})
}

// GetBySlug returns one record. Listing never touches view counts; article
// detail reads layer their increment on top of this in ArticleHandler.
func (h *Resource[T, PT]) GetBySlug(c *gin.Context) {
	record, backend, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setBackend(c, backend)
	c.JSON(http.StatusOK, record)
}

// Delete removes a record by id. Absent ids are a no-op.
func (h *Resource[T, PT]) Delete(c *gin.Context) {
	id := c.Param("id")

	backend, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.pub.PublishAsync(events.ContentEvent{
		EventType:  events.ContentDeleted,
		Collection: h.repo.Descriptor().Collection,
		RecordID:   id,
		Backend:    string(backend),
	})

	setBackend(c, backend)
	c.JSON(http.StatusNoContent, nil)
}

// create persists a bound record and answers 201.
func (h *Resource[T, PT]) create(c *gin.Context, record *T) {
	backend, err := h.repo.Create(c.Request.Context(), record)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	meta := PT(record).RecordMeta()
	h.pub.PublishAsync(events.ContentEvent{
		EventType:  events.ContentCreated,
		Collection: h.repo.Descriptor().Collection,
		RecordID:   meta.ID,
		Slug:       meta.Slug,
		Backend:    string(backend),
	})

	setBackend(c, backend)
	c.JSON(http.StatusCreated, record)
}

// update applies a bound mutation and answers 200 with the updated record.
func (h *Resource[T, PT]) update(c *gin.Context, id string, mutate func(*T) error) {
	record, backend, err := h.repo.Update(c.Request.Context(), id, mutate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	meta := PT(record).RecordMeta()
	h.pub.PublishAsync(events.ContentEvent{
		EventType:  events.ContentUpdated,
		Collection: h.repo.Descriptor().Collection,
		RecordID:   meta.ID,
		Slug:       meta.Slug,
		Backend:    string(backend),
	})

	setBackend(c, backend)
	c.JSON(http.StatusOK, record)
}
