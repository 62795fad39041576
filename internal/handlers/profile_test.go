package handlers_test

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-manager/internal/handlers"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
	"github.com/jonesrussell/content-manager/internal/store"
)

func profileRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache, err := store.OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	profile := models.Profile{Headline: "Backend Developer"}
	profile.ID = models.ProfileID
	profile.Title = "Jess Example"
	profile.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	profile.UpdatedAt = profile.CreatedAt
	seed, err := json.Marshal([]models.Profile{profile})
	require.NoError(t, err)

	resolver := store.NewResolver[models.Profile, *models.Profile](
		nil, cache, models.ProfileDescriptor, seed, logger.NewNop(),
	)
	repo := repository.NewProfile(resolver, logger.NewNop())
	handler := handlers.NewProfileHandler(repo, nil, logger.NewNop())

	router := gin.New()
	router.GET("/profile", handler.Get)
	router.PUT("/admin/profile", handler.Update)
	return router
}

func TestProfileGet(t *testing.T) {
	router := profileRouter(t)

	w := doJSON(t, router, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Header().Get(handlers.BackendHeader))

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, models.ProfileID, profile.ID)
	assert.Equal(t, "Jess Example", profile.Title)
}

func TestProfileUpdate(t *testing.T) {
	router := profileRouter(t)

	w := doJSON(t, router, http.MethodPut, "/admin/profile", gin.H{
		"headline": "Platform Engineer",
		"skills":   []string{"go", "postgres"},
		"social":   gin.H{"github": "https://github.com/jess"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.ProfileID, updated.ID)
	assert.Equal(t, "Platform Engineer", updated.Headline)
	assert.Equal(t, "Jess Example", updated.Title, "fields absent from the patch are untouched")
	assert.Equal(t, []string{"go", "postgres"}, updated.Skills)
	assert.Equal(t, "https://github.com/jess", updated.Social.GitHub)

	// The update is persisted for the next read.
	w = doJSON(t, router, http.MethodGet, "/profile", nil)
	var fetched models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Platform Engineer", fetched.Headline)
}
