package handlers

import (
	"devconnect/internal/logger"
	"devconnect/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// REST API
	h.registerAPIRoutes(router)

	// Live feed over WebSocket (HTTP upgrade) — same port
	router.GET("/ws", h.wsFeed)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Public: registration and login
		api.POST("/users", h.register)
		api.POST("/auth", h.login)

		// Protected: everything else
		api.GET("/auth", h.authMiddleware, h.currentUser)
		h.registerPostRoutes(api)
	}
}

func (h *Handler) registerPostRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts", h.authMiddleware)
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/:id", h.getPost)
		posts.DELETE("/:id", h.deletePost)
		posts.PUT("/like/:id", h.likePost)
		posts.PUT("/unlike/:id", h.unlikePost)
		posts.POST("/comment/:id", h.addComment)
		posts.DELETE("/comment/:post_id/:comment_id", h.deleteComment)
	}
}
