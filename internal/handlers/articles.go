package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
)

// ArticleHandler adds the article-specific surface on top of the shared
// resource core: block operations, the view-counting detail read, and likes.
type ArticleHandler struct {
	*Resource[models.Article, *models.Article]
}

// NewArticleHandler builds the article handler.
func NewArticleHandler(
	repo *repository.Repository[models.Article, *models.Article],
	pub *events.Publisher,
	log logger.Logger,
) *ArticleHandler {
	return &ArticleHandler{Resource: NewResource(repo, pub, log)}
}

type articlePayload struct {
	Title    string                `json:"title" binding:"required"`
	Excerpt  string                `json:"excerpt"`
	Author   string                `json:"author"`
	Category string                `json:"category"`
	Tags     []string              `json:"tags"`
	Content  []models.ContentBlock `json:"content"`
	Status   models.ArticleStatus  `json:"status"`
	Featured bool                  `json:"featured"`
}

type articlePatch struct {
	Title    *string                `json:"title"`
	Excerpt  *string                `json:"excerpt"`
	Author   *string                `json:"author"`
	Category *string                `json:"category"`
	Tags     *[]string              `json:"tags"`
	Content  *[]models.ContentBlock `json:"content"`
	Status   *models.ArticleStatus  `json:"status"`
	Featured *bool                  `json:"featured"`
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if payload.Status == "" {
		payload.Status = models.ArticleDraft
	}
	if !payload.Status.Valid() {
		respondError(c, h.logger, apperrors.Validation("status", "unknown article status"))
		return
	}
	for _, block := range payload.Content {
		if err := block.Validate(); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	article := models.Article{
		Excerpt:  payload.Excerpt,
		Author:   payload.Author,
		Category: payload.Category,
		Tags:     payload.Tags,
		Content:  payload.Content,
		Status:   payload.Status,
	}
	article.Title = payload.Title
	article.Featured = payload.Featured
	article.RecomputeReadingTime()

	h.create(c, &article)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var patch articlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(a *models.Article) error {
		if patch.Status != nil && !patch.Status.Valid() {
			return apperrors.Validation("status", "unknown article status")
		}
		if patch.Content != nil {
			for _, block := range *patch.Content {
				if err := block.Validate(); err != nil {
					return err
				}
			}
		}

		if patch.Title != nil {
			a.Title = *patch.Title
		}
		if patch.Excerpt != nil {
			a.Excerpt = *patch.Excerpt
		}
		if patch.Author != nil {
			a.Author = *patch.Author
		}
		if patch.Category != nil {
			a.Category = *patch.Category
		}
		if patch.Tags != nil {
			a.Tags = *patch.Tags
		}
		if patch.Content != nil {
			a.Content = *patch.Content
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.Featured != nil {
			a.Featured = *patch.Featured
		}

		a.RecomputeReadingTime()
		return nil
	})
}

// Detail serves the public read-detail access: it returns the article and
// increments its view count exactly once. Listing reads never come here.
func (h *ArticleHandler) Detail(c *gin.Context) {
	article, backend, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	counted, _, err := h.repo.Update(c.Request.Context(), article.ID, func(a *models.Article) error {
		a.ViewCount++
		return nil
	})
	if err != nil {
		// The read already succeeded; serve it with the stale count.
		h.logger.Warn("View count increment failed",
			logger.String("id", article.ID),
			logger.Error(err),
		)
		counted = article
	}

	h.pub.PublishAsync(events.ContentEvent{
		EventType:  events.ArticleViewed,
		Collection: h.repo.Descriptor().Collection,
		RecordID:   article.ID,
		Slug:       article.Slug,
		Backend:    string(backend),
	})

	setBackend(c, backend)
	c.JSON(http.StatusOK, counted)
}

// Like increments the like count of an article addressed by slug.
func (h *ArticleHandler) Like(c *gin.Context) {
	article, _, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.update(c, article.ID, func(a *models.Article) error {
		a.LikeCount++
		return nil
	})
}

type moveBlockPayload struct {
	Direction models.MoveDirection `json:"direction" binding:"required"`
}

// AppendBlock validates and appends one content block to the article body.
func (h *ArticleHandler) AppendBlock(c *gin.Context) {
	var block models.ContentBlock
	if err := c.ShouldBindJSON(&block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(a *models.Article) error {
		return a.AppendBlock(block)
	})
}

// RemoveBlock deletes the block at the index path parameter.
func (h *ArticleHandler) RemoveBlock(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block index"})
		return
	}

	h.update(c, c.Param("id"), func(a *models.Article) error {
		return a.RemoveBlock(index)
	})
}

// MoveBlock shifts the block at the index path parameter up or down.
func (h *ArticleHandler) MoveBlock(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block index"})
		return
	}

	var payload moveBlockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.update(c, c.Param("id"), func(a *models.Article) error {
		return a.MoveBlock(index, payload.Direction)
	})
}
