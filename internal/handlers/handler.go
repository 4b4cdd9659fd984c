package handlers

import (
	"coke_oee/internal/logger"
	"coke_oee/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// defaultMaxUploadBytes caps a dataset upload when no limit is configured.
const defaultMaxUploadBytes int64 = 32 << 20

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	maxUpload int64
}

// NewHandler constructs a new HTTP handler with dependencies. A non-positive
// maxUploadBytes selects the default limit.
func NewHandler(services *service.Service, log *logger.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{services: services, log: log, maxUpload: maxUploadBytes}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIdMiddleware)
	{
		h.registerDatasetRoutes(api)
	}
}

func (h *Handler) registerDatasetRoutes(api *gin.RouterGroup) {
	datasets := api.Group("/datasets")
	{
		// multipart form: stops=<xlsx>, production=<xlsx>
		datasets.POST("", h.uploadDataset)
		datasets.GET("", h.listDatasets)
		datasets.GET("/:id/ignored", h.getIgnored)
		datasets.GET("/:id/report", h.getReport)
	}
}
