// Package http wires the application together and exposes the REST
// surface: owner management, the reseller portal, the public client
// session API and the payment flow.
package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appusecases "keyforge/internal/application/app/usecases"
	clientusecases "keyforge/internal/application/client/usecases"
	licenseusecases "keyforge/internal/application/license/usecases"
	paymentusecases "keyforge/internal/application/payment/usecases"
	resellerusecases "keyforge/internal/application/reseller/usecases"
	userusecases "keyforge/internal/application/user/usecases"
	"keyforge/internal/infrastructure/auth"
	"keyforge/internal/infrastructure/config"
	"keyforge/internal/infrastructure/database"
	"keyforge/internal/infrastructure/gateway"
	infrarepo "keyforge/internal/infrastructure/repository"
	"keyforge/internal/interfaces/http/handlers"
	"keyforge/internal/interfaces/http/middleware"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// ownerTokenIssuer bridges the JWT service into the owner use case
// port; the packages keep their own TokenPair types so the application
// layer stays free of the infrastructure import.
type ownerTokenIssuer struct {
	svc *auth.JWTService
}

func (a *ownerTokenIssuer) Issue(subjectID uint, role string) (*userusecases.TokenPair, error) {
	pair, err := a.svc.Generate(subjectID, role)
	if err != nil {
		return nil, err
	}
	return &userusecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

type resellerTokenIssuer struct {
	svc *auth.JWTService
}

func (a *resellerTokenIssuer) Issue(subjectID uint, role string) (*resellerusecases.TokenPair, error) {
	pair, err := a.svc.Generate(subjectID, role)
	if err != nil {
		return nil, err
	}
	return &resellerusecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// Container owns the wired application graph and the resources that
// need explicit teardown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	cfg    *config.Config
	log    logger.Interface
	router *Router
}

// NewContainer connects the database, builds every repository, use case,
// handler and middleware, and registers the routes on a fresh engine.
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gormDB := database.Get()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	userRepo := infrarepo.NewUserRepository(gormDB, log)
	appRepo := infrarepo.NewAppRepository(gormDB, log)
	licenseRepo := infrarepo.NewLicenseRepository(gormDB, log)
	resellerRepo := infrarepo.NewResellerRepository(gormDB, log)
	clientRepo := infrarepo.NewClientRepository(gormDB, log)
	paymentRepo := infrarepo.NewPaymentRepository(gormDB, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	txManager := db.NewTransactionManager(gormDB)

	paymentGateway, err := gateway.NewFromConfig(cfg.Payment, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment gateway: %w", err)
	}

	ownerIssuer := &ownerTokenIssuer{svc: jwtSvc}
	resellerIssuer := &resellerTokenIssuer{svc: jwtSvc}

	authHandler := handlers.NewAuthHandler(
		userusecases.NewRegisterUserUseCase(userRepo, hasher, ownerIssuer, log),
		userusecases.NewLoginUserUseCase(userRepo, hasher, ownerIssuer, log),
		userusecases.NewGetProfileUseCase(userRepo, appRepo, log),
	)

	appHandler := handlers.NewAppHandler(
		appusecases.NewCreateAppUseCase(appRepo, userRepo, log),
		appusecases.NewGetAppUseCase(appRepo, log),
		appusecases.NewListAppsUseCase(appRepo, log),
		appusecases.NewUpdateAppUseCase(appRepo, log),
		appusecases.NewDeleteAppUseCase(appRepo, log),
		appusecases.NewGetErrorMessagesUseCase(appRepo, log),
		appusecases.NewUpdateErrorMessagesUseCase(appRepo, log),
		appusecases.NewGetAppStatsUseCase(appRepo, licenseRepo, clientRepo, resellerRepo, log),
	)

	createLicensesUC := licenseusecases.NewCreateLicensesUseCase(licenseRepo, appRepo, userRepo, resellerRepo, log)
	toggleBanLicenseUC := licenseusecases.NewToggleBanLicenseUseCase(licenseRepo, appRepo, resellerRepo, log)
	updateLicenseUC := licenseusecases.NewUpdateLicenseUseCase(licenseRepo, appRepo, resellerRepo, log)

	licenseHandler := handlers.NewLicenseHandler(
		createLicensesUC,
		licenseusecases.NewListLicensesUseCase(licenseRepo, appRepo, log),
		licenseusecases.NewGetLicenseUseCase(licenseRepo, appRepo, resellerRepo, log),
		updateLicenseUC,
		toggleBanLicenseUC,
		licenseusecases.NewDeleteLicenseUseCase(licenseRepo, appRepo, resellerRepo, log),
		licenseusecases.NewBulkDeleteLicensesUseCase(licenseRepo, appRepo, log),
	)

	resellerHandler := handlers.NewResellerHandler(
		resellerusecases.NewCreateResellerUseCase(resellerRepo, appRepo, userRepo, hasher, log),
		resellerusecases.NewGetResellerUseCase(resellerRepo, appRepo, log),
		resellerusecases.NewUpdateResellerUseCase(resellerRepo, appRepo, log),
		resellerusecases.NewDeleteResellerUseCase(resellerRepo, appRepo, licenseRepo, log),
	)

	resellerAuthHandler := handlers.NewResellerAuthHandler(
		resellerusecases.NewLoginResellerUseCase(resellerRepo, appRepo, hasher, resellerIssuer, log),
		resellerusecases.NewGetResellerProfileUseCase(resellerRepo, log),
		resellerusecases.NewGetDashboardUseCase(resellerRepo, licenseRepo, log),
		resellerusecases.NewListResellerLicensesUseCase(licenseRepo, log),
		createLicensesUC,
		toggleBanLicenseUC,
		updateLicenseUC,
	)

	clientHandler := handlers.NewClientHandler(
		clientusecases.NewRegisterClientUseCase(clientRepo, licenseRepo, appRepo, hasher, txManager, log),
		clientusecases.NewLoginClientUseCase(clientRepo, appRepo, hasher, log),
		clientusecases.NewValidateSessionUseCase(clientRepo, appRepo, log),
		clientusecases.NewCreateDirectClientUseCase(clientRepo, appRepo, hasher, log),
		clientusecases.NewListClientsUseCase(clientRepo, appRepo, log),
		clientusecases.NewToggleBanClientUseCase(clientRepo, appRepo, log),
		clientusecases.NewExtendClientUseCase(clientRepo, appRepo, log),
		clientusecases.NewResetClientHWIDUseCase(clientRepo, appRepo, log),
		clientusecases.NewDeleteClientUseCase(clientRepo, appRepo, licenseRepo, txManager, log),
	)

	paymentHandler := handlers.NewPaymentHandler(
		paymentusecases.NewCreateOrderUseCase(paymentRepo, userRepo, paymentGateway, cfg.Payment, log),
		paymentusecases.NewVerifyPaymentUseCase(paymentRepo, userRepo, paymentGateway, log),
		paymentusecases.NewHandleWebhookUseCase(paymentRepo, userRepo, paymentGateway, cfg.Payment, log),
		paymentusecases.NewRefundPaymentUseCase(paymentRepo, userRepo, paymentGateway, log),
		paymentusecases.NewListPaymentsUseCase(paymentRepo, log),
		paymentusecases.NewGetPaymentUseCase(paymentRepo, log),
		paymentusecases.NewPaymentAnalyticsUseCase(paymentRepo, log),
		paymentusecases.NewGetPricingUseCase(cfg.Payment),
		paymentusecases.NewValidateCouponUseCase(cfg.Payment, log),
		paymentusecases.NewCancelSubscriptionUseCase(userRepo, log),
	)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	router := NewRouter(
		engine,
		authHandler,
		appHandler,
		licenseHandler,
		resellerHandler,
		resellerAuthHandler,
		clientHandler,
		paymentHandler,
		middleware.NewAuthMiddleware(jwtSvc, log),
		middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		log,
	)
	router.SetupRoutes(cfg)

	return &Container{
		engine: engine,
		db:     gormDB,
		redis:  redisClient,
		cfg:    cfg,
		log:    log,
		router: router,
	}, nil
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// DB returns the gorm connection.
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Shutdown releases the container's external connections.
func (c *Container) Shutdown() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	return database.Close()
}
