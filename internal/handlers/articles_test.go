package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-manager/internal/handlers"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
	"github.com/jonesrussell/content-manager/internal/store"
)

func newArticleRepo(t *testing.T) *repository.Repository[models.Article, *models.Article] {
	t.Helper()
	cache, err := store.OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	resolver := store.NewResolver[models.Article, *models.Article](
		nil, cache, models.ArticleDescriptor, []byte("[]"), logger.NewNop(),
	)
	return repository.New[models.Article, *models.Article](resolver, models.ArticleDescriptor, logger.NewNop())
}

func articleRouter(t *testing.T) (*gin.Engine, *repository.Repository[models.Article, *models.Article]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newArticleRepo(t)
	handler := handlers.NewArticleHandler(repo, nil, logger.NewNop())

	router := gin.New()
	router.GET("/articles", handler.List)
	router.GET("/articles/:slug", handler.Detail)
	router.POST("/articles/:slug/like", handler.Like)
	router.POST("/admin/articles", handler.Create)
	router.PUT("/admin/articles/:id", handler.Update)
	router.DELETE("/admin/articles/:id", handler.Delete)
	router.POST("/admin/articles/:id/blocks", handler.AppendBlock)
	router.DELETE("/admin/articles/:id/blocks/:index", handler.RemoveBlock)
	router.PUT("/admin/articles/:id/blocks/:index/move", handler.MoveBlock)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeArticle(t *testing.T, w *httptest.ResponseRecorder) models.Article {
	t.Helper()
	var article models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	return article
}

func createArticle(t *testing.T, router *gin.Engine, payload gin.H) models.Article {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/admin/articles", payload)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decodeArticle(t, w)
}

func TestArticleCreate(t *testing.T) {
	router, _ := articleRouter(t)

	article := createArticle(t, router, gin.H{
		"title":   "Testing in Go",
		"excerpt": "A short excerpt",
		"content": []gin.H{
			{"type": "heading", "level": 2, "text": "Why test"},
			{"type": "paragraph", "text": "Because bugs."},
		},
	})

	assert.NotEmpty(t, article.ID)
	assert.Equal(t, "testing-in-go", article.Slug)
	assert.Equal(t, models.ArticleDraft, article.Status, "status defaults to draft")
	assert.Equal(t, 1, article.ReadingTime)
}

func TestArticleCreate_Invalid(t *testing.T) {
	router, _ := articleRouter(t)

	t.Run("missing title", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/articles", gin.H{"excerpt": "no title"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/articles", gin.H{"title": "x", "status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid block", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/articles", gin.H{
			"title":   "x",
			"content": []gin.H{{"type": "heading", "level": 9, "text": "too deep"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestArticleDetail_IncrementsViewCountOnce(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{"title": "Counted"})

	w := doJSON(t, router, http.MethodGet, "/articles/"+created.Slug, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeArticle(t, w).ViewCount)

	w = doJSON(t, router, http.MethodGet, "/articles/"+created.Slug, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeArticle(t, w).ViewCount)
}

func TestArticleList_DoesNotTouchViewCounts(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{"title": "Listed"})

	for range 3 {
		w := doJSON(t, router, http.MethodGet, "/articles", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/articles/"+created.Slug, nil)
	assert.Equal(t, 1, decodeArticle(t, w).ViewCount,
		"listing must not count as a detail read")
}

func TestArticleList_BackendHeaderAndEnvelope(t *testing.T) {
	router, _ := articleRouter(t)
	createArticle(t, router, gin.H{"title": "In Envelope"})

	w := doJSON(t, router, http.MethodGet, "/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Header().Get(handlers.BackendHeader))

	var envelope struct {
		Items   []models.Article `json:"items"`
		Count   int              `json:"count"`
		Backend string           `json:"backend"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Count)
	assert.Equal(t, "local", envelope.Backend)
}

func TestArticleList_UndeclaredFacetIsBadRequest(t *testing.T) {
	router, _ := articleRouter(t)
	createArticle(t, router, gin.H{"title": "Faceted"})

	// "publisher" is not a declared facet; it is also not read from the URL,
	// so it is simply ignored rather than silently matching nothing.
	w := doJSON(t, router, http.MethodGet, "/articles?publisher=acme", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// An unknown sort key, which does flow through, must fail loudly.
	w = doJSON(t, router, http.MethodGet, "/articles?sort=Shortest", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticleLike(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{"title": "Likeable"})

	w := doJSON(t, router, http.MethodPost, "/articles/"+created.Slug+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeArticle(t, w).LikeCount)

	w = doJSON(t, router, http.MethodPost, "/articles/"+created.Slug+"/like", nil)
	assert.Equal(t, 2, decodeArticle(t, w).LikeCount)
}

func TestArticleUpdate_PartialPatch(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{"title": "Patchable", "excerpt": "old"})

	w := doJSON(t, router, http.MethodPut, "/admin/articles/"+created.ID, gin.H{"excerpt": "new"})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeArticle(t, w)
	assert.Equal(t, "new", updated.Excerpt)
	assert.Equal(t, "Patchable", updated.Title, "fields absent from the patch are untouched")
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.ID, updated.ID)
}

func TestArticleDelete(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{"title": "Removable"})

	w := doJSON(t, router, http.MethodDelete, "/admin/articles/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/articles/"+created.Slug, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting again is a no-op, not an error.
	w = doJSON(t, router, http.MethodDelete, "/admin/articles/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestArticleBlockOperations(t *testing.T) {
	router, _ := articleRouter(t)
	created := createArticle(t, router, gin.H{
		"title": "Blocky",
		"content": []gin.H{
			{"type": "paragraph", "text": "first"},
			{"type": "paragraph", "text": "second"},
		},
	})

	t.Run("append", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/articles/"+created.ID+"/blocks",
			gin.H{"type": "code", "language": "go", "text": "x := 1"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeArticle(t, w).Content, 3)
	})

	t.Run("append invalid block", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/articles/"+created.ID+"/blocks",
			gin.H{"type": "list"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("move down", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/admin/articles/"+created.ID+"/blocks/0/move",
			gin.H{"direction": "down"})
		require.Equal(t, http.StatusOK, w.Code)
		article := decodeArticle(t, w)
		assert.Equal(t, "second", article.Content[0].Text)
		assert.Equal(t, "first", article.Content[1].Text)
	})

	t.Run("remove", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/admin/articles/"+created.ID+"/blocks/0", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeArticle(t, w).Content, 2)
	})

	t.Run("remove out of range", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/admin/articles/"+created.ID+"/blocks/9", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric index", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/admin/articles/"+created.ID+"/blocks/first", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
