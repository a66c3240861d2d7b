package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmcrm/backend/internal/repository"
	"github.com/realmcrm/backend/internal/usecases"
)

type Handler struct {
	authUsecase   *usecases.AuthUsecase
	leadRepo      *repository.LeadRepository
	activityRepo  *repository.ActivityRepository
	dashboardRepo *repository.DashboardRepository
	userRepo      *repository.UserRepository
}

func NewHandler(auth *usecases.AuthUsecase, leads *repository.LeadRepository, activities *repository.ActivityRepository, dashboard *repository.DashboardRepository, users *repository.UserRepository) *Handler {
	return &Handler{
		authUsecase:   auth,
		leadRepo:      leads,
		activityRepo:  activities,
		dashboardRepo: dashboard,
		userRepo:      users,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler, middleware *Middleware) {
	// Apply Security Middleware
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Realm CRM API Running"})
	})

	// Public Auth Routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", middleware.RateLimitPerIP(1, 5), h.Login)
	}

	// Protected Routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	api.Use(middleware.RateLimitPerUser(5, 10))
	{
		api.GET("/auth/me", h.Me)

		api.GET("/leads", h.GetLeads)
		api.GET("/leads/:id", h.GetLeadByID)
		api.POST("/leads", h.CreateLead)
		api.PUT("/leads/:id", h.UpdateLead)

		api.GET("/leads/:id/activities", h.GetActivities)
		api.POST("/leads/:id/activities", h.CreateActivity)

		api.GET("/dashboard/stats", h.GetDashboardStats)
	}

	// Admin-only Routes
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired())
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/users", h.GetTenantUsers)
	}
}

// authUser is the identity the guard injected into the request context.
type authUser struct {
	ID       int
	TenantID string
	Role     string
}

func currentUser(c *gin.Context) authUser {
	id, _ := c.Get("user_id")
	tenant, _ := c.Get("tenant_id")
	role, _ := c.Get("role")

	u := authUser{}
	if v, ok := id.(int); ok {
		u.ID = v
	}
	if v, ok := tenant.(string); ok {
		u.TenantID = v
	}
	if v, ok := role.(string); ok {
		u.Role = v
	}
	return u
}
