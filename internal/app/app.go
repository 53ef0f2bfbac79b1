package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/propmarket/server/internal/domain/notification"
	"github.com/propmarket/server/internal/domain/payment"

	// Inbound adapters
	ginadapter "github.com/propmarket/server/internal/adapter/inbound/gin"

	// Outbound adapters
	"github.com/propmarket/server/internal/adapter/outbound/postgres"
	"github.com/propmarket/server/internal/adapter/outbound/report"

	// Shared infrastructure
	_ "github.com/propmarket/server/cmd/server/docs" // swagger docs
	"github.com/propmarket/server/internal/infra/config"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/propmarket/server/internal/utils/middleware"
)

const healthCheckTimeout = 2 * time.Second

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     goredis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	// Domain services
	paymentDomain      payment.PaymentDomain
	notificationDomain notification.NotificationDomain

	// Cleanup functions, run in reverse order by Stop
	cleanupFuncs []func()
}

// New creates a new application instance.
func New(cfg *config.Config) (_ *App, err error) {
	app := &App{
		config:       cfg,
		logger:       ProvideLogger(cfg),
		metrics:      ProvideMetrics(),
		cleanupFuncs: make([]func(), 0),
	}
	defer func() {
		if err != nil {
			app.Stop()
		}
	}()

	zapLog, cleanup, err := ProvideZapLogger(cfg)
	if err != nil {
		return nil, err
	}
	app.zapLogger = zapLog
	app.addCleanup(cleanup)

	// Initialize infrastructure
	if err := app.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	// Initialize domains with adapters
	if err := app.initDomains(); err != nil {
		return nil, fmt.Errorf("init domains: %w", err)
	}

	// Initialize router and routes
	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// MigrateOnly opens the database, applies migrations and closes it.
func MigrateOnly(cfg *config.Config) error {
	migrateCfg := *cfg
	migrateCfg.Database.AutoMigrate = true
	_, cleanup, err := ProvideDatabase(&migrateCfg)
	if err != nil {
		return err
	}
	cleanup()
	return nil
}

func (a *App) addCleanup(fn func()) {
	if fn != nil {
		a.cleanupFuncs = append(a.cleanupFuncs, fn)
	}
}

// initInfrastructure initializes database and cache connections.
func (a *App) initInfrastructure() error {
	db, cleanup, err := ProvideDatabase(a.config)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	a.db = db
	a.addCleanup(cleanup)

	redis, cleanup := ProvideRedisClient(a.config, a.zapLogger)
	a.redis = redis
	a.addCleanup(cleanup)

	return nil
}

// initDomains initializes all domain services with their adapters.
// Notifications come first because payments notify through them.
func (a *App) initDomains() error {
	if err := a.initNotificationDomain(); err != nil {
		return fmt.Errorf("init notification domain: %w", err)
	}
	if err := a.initPaymentDomain(); err != nil {
		return fmt.Errorf("init payment domain: %w", err)
	}
	return nil
}

// initNotificationDomain initializes the notification domain with its adapters.
func (a *App) initNotificationDomain() error {
	emailSender, err := ProvideEmailSender(a.config, a.zapLogger)
	if err != nil {
		return err
	}

	a.notificationDomain = notification.NewNotificationDomain(
		postgres.NewNotificationAdapter(a.db),
		postgres.NewUserAdapter(a.db),
		emailSender,
		ProvideRealtime(a.redis, a.zapLogger),
		a.zapLogger,
	)
	return nil
}

// initPaymentDomain initializes the payment domain with its adapters.
func (a *App) initPaymentDomain() error {
	gateway, err := ProvideGateway(a.config, ProvideHTTPClient(a.config), a.metrics, a.zapLogger)
	if err != nil {
		return err
	}
	storage, err := ProvideStorage(a.config)
	if err != nil {
		return err
	}
	bus, err := ProvideEventBus(a.config, a.metrics, a.zapLogger)
	if err != nil {
		return err
	}

	listingDB := postgres.NewListingAdapter(a.db)
	a.paymentDomain = payment.NewPaymentDomain(
		postgres.NewPaymentAdapter(a.db),
		postgres.NewWebhookEventAdapter(a.db),
		postgres.NewTransactorAdapter(a.db),
		gateway,
		listingDB,
		postgres.NewUserAdapter(a.db),
		payment.NewEffectApplier(listingDB),
		ProvideNotifier(a.notificationDomain),
		bus,
		report.NewXLSXReport(),
		storage,
		ProvidePriceTable(a.config),
		ProvidePaymentConfig(a.config),
		a.zapLogger,
	)

	a.zapLogger.Info("payment domain ready",
		zap.String("provider", gateway.Name()),
		zap.String("currency", a.config.Payment.Currency),
		zap.Bool("export_storage", storage != nil),
		zap.String("events_driver", a.config.Events.Driver),
	)
	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	// Set Gin mode based on log level
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = a.config.CORS.AllowOrigins

	// Apply global middleware
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger, "/health", "/metrics"))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// health reports 503 when the database or, if configured, Redis is unreachable.
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true

	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if a.redis != nil {
		checks["redis"] = "ok"
		if err := a.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		}
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}

// registerRoutes registers all HTTP routes.
func (a *App) registerRoutes() {
	mw := ProvideRouteMiddleware(
		a.config,
		ProvideTokenValidator(a.config),
		ProvideAdminAuthorizer(a.config),
		ProvideRateLimiter(a.config, a.redis),
		ProvideIdempotencyStore(a.redis),
		a.logger,
	)

	v1 := a.router.Group("/api/v1")

	ginadapter.RegisterPaymentRoutes(v1,
		ProvidePaymentHandler(a.paymentDomain, a.metrics, a.logger),
		ginadapter.NewPaymentAdminAdapter(a.paymentDomain, a.logger),
		ProvideWebhookHandler(a.config, a.paymentDomain, a.metrics, a.logger),
		mw,
	)
	ginadapter.RegisterNotificationRoutes(v1,
		ginadapter.NewNotificationAdapter(a.notificationDomain, a.logger),
		mw,
	)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases resources in reverse order of acquisition.
func (a *App) Stop() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}
