package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/infrastructure/config"
	"keyforge/internal/interfaces/http/handlers"
	"keyforge/internal/interfaces/http/middleware"
	"keyforge/internal/shared/logger"
)

// Router registers the REST routes on the gin engine.
type Router struct {
	engine              *gin.Engine
	authHandler         *handlers.AuthHandler
	appHandler          *handlers.AppHandler
	licenseHandler      *handlers.LicenseHandler
	resellerHandler     *handlers.ResellerHandler
	resellerAuthHandler *handlers.ResellerAuthHandler
	clientHandler       *handlers.ClientHandler
	paymentHandler      *handlers.PaymentHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         *middleware.RateLimiter
	log                 logger.Interface
}

func NewRouter(
	engine *gin.Engine,
	authHandler *handlers.AuthHandler,
	appHandler *handlers.AppHandler,
	licenseHandler *handlers.LicenseHandler,
	resellerHandler *handlers.ResellerHandler,
	resellerAuthHandler *handlers.ResellerAuthHandler,
	clientHandler *handlers.ClientHandler,
	paymentHandler *handlers.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	log logger.Interface,
) *Router {
	return &Router{
		engine:              engine,
		authHandler:         authHandler,
		appHandler:          appHandler,
		licenseHandler:      licenseHandler,
		resellerHandler:     resellerHandler,
		resellerAuthHandler: resellerAuthHandler,
		clientHandler:       clientHandler,
		paymentHandler:      paymentHandler,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		log:                 log,
	}
}

// SetupRoutes installs the global middleware chain and every route
// group under /api/v1.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	r.setupAuthRoutes(v1)
	r.setupAppRoutes(v1)
	r.setupLicenseRoutes(v1)
	r.setupResellerRoutes(v1)
	r.setupClientRoutes(v1)
	r.setupPaymentRoutes(v1)
}

func (r *Router) setupAuthRoutes(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.rateLimiter.Limit(), r.authHandler.Register)
		auth.POST("/login", r.rateLimiter.Limit(), r.authHandler.Login)
		auth.GET("/profile", r.authMiddleware.RequireOwner(), r.authHandler.GetProfile)
	}
}

func (r *Router) setupAppRoutes(v1 *gin.RouterGroup) {
	apps := v1.Group("/apps")
	apps.Use(r.authMiddleware.RequireOwner())
	{
		apps.POST("", r.appHandler.CreateApp)
		apps.GET("", r.appHandler.ListApps)
		apps.GET("/:id", r.appHandler.GetApp)
		apps.PUT("/:id", r.appHandler.UpdateApp)
		apps.DELETE("/:id", r.appHandler.DeleteApp)
		apps.GET("/:id/error-messages", r.appHandler.GetErrorMessages)
		apps.PUT("/:id/error-messages", r.appHandler.UpdateErrorMessages)
		apps.GET("/:id/stats", r.appHandler.GetAppStats)
	}
}

func (r *Router) setupLicenseRoutes(v1 *gin.RouterGroup) {
	licenses := v1.Group("/licenses")
	licenses.Use(r.authMiddleware.RequireOwner())
	{
		licenses.POST("", r.licenseHandler.CreateLicenses)
		licenses.GET("", r.licenseHandler.ListLicenses)
		licenses.DELETE("", r.licenseHandler.BulkDelete)
		licenses.GET("/:id", r.licenseHandler.GetLicense)
		licenses.PUT("/:id", r.licenseHandler.UpdateLicense)
		licenses.PATCH("/:id/toggle-ban", r.licenseHandler.ToggleBan)
		licenses.DELETE("/:id", r.licenseHandler.DeleteLicense)
	}
}

func (r *Router) setupResellerRoutes(v1 *gin.RouterGroup) {
	// Owner-side reseller management.
	resellers := v1.Group("/resellers")
	resellers.Use(r.authMiddleware.RequireOwner())
	{
		resellers.POST("", r.resellerHandler.CreateReseller)
		resellers.GET("/:id", r.resellerHandler.GetReseller)
		resellers.PUT("/:id", r.resellerHandler.UpdateReseller)
		resellers.DELETE("/:id", r.resellerHandler.DeleteReseller)
	}

	// Reseller portal: login is public, the rest carries a reseller JWT.
	resellerAuth := v1.Group("/resellers/auth")
	{
		resellerAuth.POST("/login", r.rateLimiter.Limit(), r.resellerAuthHandler.Login)
		resellerAuth.GET("/profile", r.authMiddleware.RequireReseller(), r.resellerAuthHandler.GetProfile)

		licenses := resellerAuth.Group("/licenses")
		licenses.Use(r.authMiddleware.RequireReseller())
		{
			licenses.GET("", r.resellerAuthHandler.ListLicenses)
			licenses.POST("", r.resellerAuthHandler.CreateLicenses)
			licenses.PATCH("/:id/toggle-ban", r.resellerAuthHandler.ToggleBan)
			licenses.PUT("/:id/expiry", r.resellerAuthHandler.UpdateExpiry)
		}
	}

	dashboard := v1.Group("/resellers/dashboard")
	dashboard.Use(r.authMiddleware.RequireReseller())
	{
		dashboard.GET("/data", r.resellerAuthHandler.GetDashboard)
	}
}

func (r *Router) setupClientRoutes(v1 *gin.RouterGroup) {
	clients := v1.Group("/clients")
	{
		// Public session API authenticated by app credentials in the
		// body.
		clients.POST("/register", r.rateLimiter.Limit(), r.clientHandler.Register)
		clients.POST("/login", r.rateLimiter.Limit(), r.clientHandler.Login)
		clients.POST("/validate-session", r.clientHandler.ValidateSession)

		// Owner-side management.
		clients.GET("", r.authMiddleware.RequireOwner(), r.clientHandler.ListClients)
		clients.POST("/create-direct", r.authMiddleware.RequireOwner(), r.clientHandler.CreateDirect)
		clients.PATCH("/:id/toggle-ban", r.authMiddleware.RequireOwner(), r.clientHandler.ToggleBan)
		clients.PATCH("/:id/extend", r.authMiddleware.RequireOwner(), r.clientHandler.Extend)
		clients.PATCH("/:id/reset-hwid", r.authMiddleware.RequireOwner(), r.clientHandler.ResetHWID)
		clients.DELETE("/:id", r.authMiddleware.RequireOwner(), r.clientHandler.DeleteClient)
	}
}

func (r *Router) setupPaymentRoutes(v1 *gin.RouterGroup) {
	payments := v1.Group("/payments")
	{
		// Public endpoints: plan table and the gateway webhook.
		payments.GET("/pricing", r.paymentHandler.GetPricing)
		payments.POST("/webhook", r.paymentHandler.Webhook)

		owner := payments.Group("")
		owner.Use(r.authMiddleware.RequireOwner())
		{
			owner.POST("/razorpay/create-order", r.paymentHandler.CreateOrder)
			owner.POST("/razorpay/verify", r.paymentHandler.VerifyPayment)
			owner.GET("/history", r.paymentHandler.ListPayments)
			owner.GET("/analytics", r.paymentHandler.GetAnalytics)
			owner.POST("/cancel-subscription", r.paymentHandler.CancelSubscription)
			owner.POST("/validate-coupon", r.paymentHandler.ValidateCoupon)
			owner.GET("/:paymentId", r.paymentHandler.GetPayment)
			owner.POST("/:paymentId/refund", r.paymentHandler.RefundPayment)
		}
	}
}
