package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/content-manager/internal/config"
	"github.com/jonesrussell/content-manager/internal/handlers"
	"github.com/jonesrussell/content-manager/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

// Handlers groups the per-collection handlers the router mounts.
type Handlers struct {
	Articles    *handlers.ArticleHandler
	Portfolio   *handlers.PortfolioHandler
	Credentials *handlers.CredentialHandler
	Services    *handlers.ServiceHandler
	Profile     *handlers.ProfileHandler
	Metadata    *handlers.MetadataHandler
}

func NewRouter(cfg *config.Config, h Handlers, log logger.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length", handlers.BackendHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	router.Use(ginLogger(log))
	router.Use(metricsMiddleware())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public read surface
	v1 := router.Group("/api/v1")
	v1.GET("/articles", h.Articles.List)
	v1.GET("/articles/:slug", h.Articles.Detail)
	v1.POST("/articles/:slug/like", h.Articles.Like)
	v1.GET("/portfolio", h.Portfolio.List)
	v1.GET("/portfolio/:slug", h.Portfolio.GetBySlug)
	v1.GET("/credentials", h.Credentials.List)
	v1.GET("/credentials/:slug", h.Credentials.GetBySlug)
	v1.GET("/services", h.Services.List)
	v1.GET("/services/:slug", h.Services.GetBySlug)
	v1.GET("/profile", h.Profile.Get)

	// Admin write surface
	admin := v1.Group("/admin")
	admin.Use(authRequired(cfg.Auth.JWTSecret))

	admin.POST("/articles", h.Articles.Create)
	admin.PUT("/articles/:id", h.Articles.Update)
	admin.DELETE("/articles/:id", h.Articles.Delete)
	admin.POST("/articles/:id/blocks", h.Articles.AppendBlock)
	admin.DELETE("/articles/:id/blocks/:index", h.Articles.RemoveBlock)
	admin.PUT("/articles/:id/blocks/:index/move", h.Articles.MoveBlock)

	admin.POST("/portfolio", h.Portfolio.Create)
	admin.PUT("/portfolio/:id", h.Portfolio.Update)
	admin.DELETE("/portfolio/:id", h.Portfolio.Delete)

	admin.POST("/credentials", h.Credentials.Create)
	admin.PUT("/credentials/:id", h.Credentials.Update)
	admin.DELETE("/credentials/:id", h.Credentials.Delete)
	admin.POST("/credentials/import", h.Credentials.Import)

	admin.POST("/services", h.Services.Create)
	admin.PUT("/services/:id", h.Services.Update)
	admin.DELETE("/services/:id", h.Services.Delete)

	admin.PUT("/profile", h.Profile.Update)
	admin.GET("/metadata", h.Metadata.Extract)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
