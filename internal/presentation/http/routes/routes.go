package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/config"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/internal/presentation/http/handler"
	"github.com/sangkips/gymcore-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymcore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Staff      *handler.StaffHandler
	Member     *handler.MemberHandler
	CheckIn    *handler.CheckInHandler
	Receipt    *handler.ReceiptHandler
	Session    *handler.SessionHandler
	Commission *handler.CommissionHandler
	Settings   *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		Requests:        deps.Cfg.RateLimit.Requests,
		Per:             time.Duration(deps.Cfg.RateLimit.Duration) * time.Second,
		BurstSize:       deps.Cfg.RateLimit.Requests,
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "ok",
			"service":     deps.Cfg.App.Name,
			"rate_limits": rateLimiter.Stats(),
		})
	})

	api := router.Group("/api")
	{
		registerAuthRoutes(api, h, deps)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(deps.Cfg.Gym.LoginRate), h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/logout", h.Auth.Logout)

	registerStaffRoutes(protected, h)
	registerMemberRoutes(protected, h)
	registerReceiptRoutes(protected, h, idempotent)
	for _, domain := range enum.AllServiceDomains() {
		registerSessionRoutes(protected, h, domain, idempotent)
	}
	registerCommissionRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerAdminRoutes(protected, h)
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	canView := middleware.RequirePermission(enum.PermViewStaff)
	canEdit := middleware.RequirePermission(enum.PermEditStaff)

	staff := protected.Group("/staff")
	{
		staff.GET("", canView, h.Staff.List)
		staff.POST("", canEdit, h.Staff.Create)
		staff.GET("/:id", canView, h.Staff.Get)
		staff.PUT("/:id", canEdit, h.Staff.Update)
		staff.DELETE("/:id", canEdit, h.Staff.Delete)
	}
}

func registerMemberRoutes(protected *gin.RouterGroup, h *Handlers) {
	canView := middleware.RequirePermission(enum.PermViewMembers)
	canEdit := middleware.RequirePermission(enum.PermEditMembers)

	members := protected.Group("/members")
	{
		members.GET("", canView, h.Member.List)
		members.POST("", canEdit, h.Member.Create)
		members.GET("/:id", canView, h.Member.Get)
		members.PUT("/:id/status", canEdit, h.Member.SetStatus)
		members.GET("/:id/qr", canView, h.Member.QRCodeImage)
		members.POST("/:id/qr/regenerate", canEdit, h.Member.RegenerateQRCode)
	}

	checkIn := protected.Group("/member-checkin")
	checkIn.Use(canView)
	{
		checkIn.POST("", h.CheckIn.CheckIn)
		checkIn.GET("/current", h.CheckIn.Current)
		checkIn.POST("/auto-checkout", canEdit, h.CheckIn.AutoCheckout)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", middleware.RequirePermission(enum.PermViewReceipts), h.Receipt.List)
		receipts.GET("/:id", middleware.RequirePermission(enum.PermViewReceipts), h.Receipt.Get)
		receipts.POST("", middleware.RequirePermission(enum.PermCreateReceipts), idempotent, h.Receipt.Create)
		receipts.GET("/printer", middleware.RequirePermission(enum.PermViewReceipts), h.Receipt.PrinterStatus)
		receipts.POST("/:id/print", middleware.RequirePermission(enum.PermViewReceipts), h.Receipt.Print)
	}
}

// registerSessionRoutes mounts one domain's session blocks under /api/<domain>
func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, domain enum.ServiceDomain, idempotent gin.HandlerFunc) {
	canView := middleware.RequirePermission(domain.ViewPermission())
	canEdit := middleware.RequirePermission(domain.EditPermission())

	group := protected.Group("/" + domain.String())
	{
		group.GET("", canView, h.Session.List(domain))
		group.POST("", canEdit, idempotent, h.Session.Create(domain))
		group.GET("/:number", canView, h.Session.Get(domain))
		group.POST("/:number/attendance", canEdit, h.Session.Attend(domain))
	}
}

func registerCommissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	commissions := protected.Group("/commissions")
	commissions.Use(middleware.RequirePermission(enum.PermViewCommissions))
	{
		commissions.GET("", h.Commission.List)
		commissions.GET("/member-signups", h.Commission.MemberSignups)
		commissions.GET("/sessions", h.Commission.Sessions)
		commissions.GET("/earnings", h.Commission.Earnings)
		commissions.GET("/earnings/export", h.Commission.EarningsExport)
		commissions.POST("/calculate", h.Commission.Calculate)
		commissions.POST("/statement", h.Commission.Statement)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/commission-settings", h.Settings.GetCommissionSettings)
	protected.PUT("/commission-settings", middleware.RequirePermission(enum.PermEditMembers), h.Settings.UpdateCommissionSettings)

	// the service decides who may change the method
	protected.GET("/settings/commission", h.Settings.GetDefaultMethod)
	protected.PUT("/settings/commission", h.Settings.SetDefaultMethod)
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequirePermission(enum.PermManageUsers))
	{
		admin.GET("/users", h.User.List)
		admin.POST("/users", h.User.Create)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id", h.User.Update)
		admin.DELETE("/users/:id", h.User.Delete)

		admin.GET("/roles", h.User.ListRoles)
		// editing grants stays with administrators so a manager cannot widen their own role
		admin.PUT("/roles/:name/permissions", middleware.RequireRole(enum.RoleAdmin), h.User.UpdateRolePermissions)
		admin.GET("/permissions", h.User.ListPermissions)
	}
}
