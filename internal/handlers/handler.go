package handlers

import (
	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
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
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerDashboardRoutes(router)
	h.registerTelemetryRoutes(router)
	h.registerFaultRoutes(router)

	// Live stream for the dashboard, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerTelemetryRoutes(r *gin.Engine) {
	r.POST("/ingest", h.ingest)
	r.GET("/latest", h.getLatest)
	r.GET("/events", h.getEvents)
}

func (h *Handler) registerFaultRoutes(r *gin.Engine) {
	r.GET("/fault", h.getFault)

	toggles := r.Group("/fault", h.faultGuardMiddleware)
	{
		toggles.POST("/on", h.faultOn)
		toggles.POST("/off", h.faultOff)
	}
}
