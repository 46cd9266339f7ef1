package handlers

import (
	"time"

	_ "fuel_pump_registry/docs"
	"fuel_pump_registry/internal/logger"
	"fuel_pump_registry/internal/metrics"
	"fuel_pump_registry/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// StreamConfig bounds the /ws snapshot interval.
type StreamConfig struct {
	DefaultInterval time.Duration
	MaxInterval     time.Duration
}

func (s StreamConfig) withDefaults() StreamConfig {
	if s.DefaultInterval <= 0 {
		s.DefaultInterval = defaultInterval
	}
	if s.MaxInterval <= 0 {
		s.MaxInterval = maxInterval
	}
	if s.DefaultInterval > s.MaxInterval {
		s.DefaultInterval = s.MaxInterval
	}
	return s
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	stream   StreamConfig
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, stream StreamConfig) *Handler {
	return &Handler{services: services, log: log, stream: stream.withDefaults()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health and Prometheus scrape endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live pump snapshots over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.principalMiddleware)
	{
		h.registerPumpRoutes(api)
	}
}

func (h *Handler) registerPumpRoutes(api *gin.RouterGroup) {
	pumps := api.Group("/pumps")
	{
		pumps.POST("", h.createPump)
		pumps.GET("", h.listPumps)
		pumps.GET("/:id", h.getPump)
		pumps.PUT("/:id", h.updatePump)
		pumps.DELETE("/:id", h.deletePump)
		// Body example: {"quantity":25.5}
		pumps.POST("/:id/dispense", h.dispense)
		pumps.GET("/:id/transactions", h.listTransactions)
		// Body example: {"status":"Maintenance"}
		pumps.PUT("/:id/status", h.setStatus)
	}
}
