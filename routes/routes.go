package routes

import (
	"net/http"
	"time"

	accountRepo "traintrack/database/repository/account"
	"traintrack/handlers"
	"traintrack/middleware"
	"traintrack/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and shared dependencies the router needs.
type HandlerBundle struct {
	AccountRepo accountRepo.AccountRepository

	Allocation  *handlers.AllocationHandler
	Application *handlers.ApplicationHandler
	Auth        *handlers.AuthHandler
	Records     *handlers.RecordsHandler
}

// RegisterSchedulingRoutes registers the booking scheduler endpoints.
// Creating and revising allocations requires an authenticated account;
// hard deletion is admin-only.
func RegisterSchedulingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/allocations")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo))
		api.POST("", hb.Allocation.CreateAllocationHandler)
		api.PUT("/:id", hb.Allocation.UpdateAllocationHandler)
		api.PUT("/:id/status", hb.Allocation.UpdateAllocationStatusHandler)
		api.DELETE("/:id/cancel", hb.Allocation.CancelAllocationHandler)
		api.GET("/trainer/:trainerId", hb.Allocation.ListTrainerAllocationsHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.DELETE("/:id", hb.Allocation.DeleteAllocationHandler)
	}
}

// RegisterApplicationRoutes registers the trainer application workflow
// endpoints. Submission is public; listing and deciding are admin-only.
func RegisterApplicationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/applications")
	{
		api.POST("", hb.Application.SubmitApplicationHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.AccountRepo), middleware.RequireAdmin())
		admin.GET("", hb.Application.ListApplicationsHandler)
		admin.POST("/:id/decision", hb.Application.DecideApplicationHandler)
	}
}

// RegisterAccountRoutes registers authentication endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/login", hb.Auth.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.AccountRepo))
		protected.PUT("/password", hb.Auth.ChangePasswordHandler)
		protected.GET("/profile", hb.Auth.GetTrainerProfileHandler)
	}
}

// RegisterCatalogueRoutes registers session/client reference record
// endpoints (admin-managed).
func RegisterCatalogueRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/catalogue")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo))
		api.GET("/sessions/:id", hb.Records.GetSessionHandler)
		api.GET("/clients/:id", hb.Records.GetClientHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("/sessions", hb.Records.CreateSessionHandler)
		admin.POST("/clients", hb.Records.CreateClientHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterApplicationRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterHealthRoute(r)
}
