package handlers

import (
	"firing_curve/internal/logger"
	"firing_curve/internal/service"

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

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Run state stream over WebSocket, same port
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
	api := r.Group("/api/v1", h.requireUser)
	{
		api.GET("/glass", h.listGlass)
		h.registerProgramRoutes(api)
		h.registerKilnRoutes(api)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerProgramRoutes(api *gin.RouterGroup) {
	programs := api.Group("/programs")
	{
		programs.POST("", h.createProgram)
		// Body example: {"glass":"Bullseye COE 90","oven":"t","radius":10,"layers":2,"hold_minutes":10,"room_temp":20,"firing":"f"}
		programs.POST("/build", h.buildProgram)
		programs.GET("", h.listPrograms)
		programs.GET("/:id", h.getProgram)
		programs.DELETE("/:id", h.deleteProgram)
		programs.GET("/:id/chart", h.getChart)

		phases := programs.Group("/:id/phases")
		{
			// Body example: {"velocity":300,"end_temp":540,"holding_time":0,"index":1}
			phases.POST("", h.insertPhase)
			phases.GET("/:index", h.getPhase)
			phases.PATCH("/:index", h.updatePhase)
			phases.DELETE("/:index", h.removePhase)
		}
	}
}

func (h *Handler) registerKilnRoutes(api *gin.RouterGroup) {
	kiln := api.Group("/kiln")
	{
		// Body example: {"program_id":"3f0c..."}
		kiln.POST("/start", h.startKiln)
		kiln.POST("/stop", h.stopKiln)
		kiln.GET("/state", h.getState)
	}
}
