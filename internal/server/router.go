package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

// NewRouter wires middleware and every route onto a fresh gin engine.
func NewRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Unsupported methods on known paths fall through to NoRoute (404).
	router.HandleMethodNotAllowed = false

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Timeout(c.Config.App.RequestTimeout),
	)

	router.GET("/health", healthCheckHandler(c))

	setupPostRoutes(router, c)
	setupAuthorRoutes(router, c)

	router.NoRoute(func(ctx *gin.Context) {
		response.Message(ctx, http.StatusNotFound, "Not Found")
	})

	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(r *gin.Engine, c *container.Container) {
	posts := r.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.POST("", c.PostHandler.Create)
		posts.GET("/:id", c.PostHandler.Get)
		posts.PUT("/:id", c.PostHandler.Update)
		posts.DELETE("/:id", c.PostHandler.Delete)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	authors := r.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"driver":    string(appCtx.Driver),
		}

		if appCtx.DB == nil {
			health["status"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: database ping failed")
			health["status"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}

		c.JSON(http.StatusOK, health)
	}
}
