package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/propmarket/server/internal/domain/notification"
	"github.com/propmarket/server/internal/domain/payment"

	// Inbound adapters
	ginadapter "github.com/propmarket/server/internal/adapter/inbound/gin"

	// Ports
	"github.com/propmarket/server/internal/port/inbound"
	"github.com/propmarket/server/internal/port/outbound"

	// Outbound adapters
	"github.com/propmarket/server/internal/adapter/outbound/email"
	jwtadapter "github.com/propmarket/server/internal/adapter/outbound/jwt"
	"github.com/propmarket/server/internal/adapter/outbound/paystack"
	"github.com/propmarket/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/propmarket/server/internal/adapter/outbound/redis"
	"github.com/propmarket/server/internal/adapter/outbound/report"
	s3adapter "github.com/propmarket/server/internal/adapter/outbound/s3"
	sqsadapter "github.com/propmarket/server/internal/adapter/outbound/sqs"
	stripeadapter "github.com/propmarket/server/internal/adapter/outbound/stripe"

	// Infrastructure
	"github.com/propmarket/server/internal/infra/cache"
	"github.com/propmarket/server/internal/infra/config"
	"github.com/propmarket/server/internal/infra/database"
	"github.com/propmarket/server/internal/infra/events"
	"github.com/propmarket/server/internal/infra/httpclient"

	// Utils
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/propmarket/server/internal/utils/middleware"
)

// metricsNamespace prefixes every exported metric.
const metricsNamespace = "propmarket"

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideHTTPClient,
	ProvideRateLimiter,
	ProvideIdempotencyStore,
	ProvideLogger,
	ProvideZapLogger,
	ProvideMetrics,
)

// ProvideDatabase creates a database connection and migrates it when enabled.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}
	return db, func() { _ = database.Close(db) }, nil
}

// ProvideRedisClient creates a Redis client. Without Redis the server runs
// with rate limiting, idempotency and live notifications disabled.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = client.Close() }
}

// ProvideLogger creates a logger instance.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init zap logger: %w", err)
	}
	return zapLog, func() { _ = zapLog.Sync() }, nil
}

// ProvideHTTPClient creates the pooled client used for gateway calls.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(cfg.HTTPClient, httpclient.WithTimeout(cfg.Payment.GatewayTimeout))
}

// ProvideRateLimiter creates a rate limiter, or nil when disabled or without Redis.
func ProvideRateLimiter(cfg *config.Config, redis goredis.UniversalClient) outbound.RateLimiterPort {
	if redis == nil || !cfg.RateLimit.Enabled {
		return nil
	}
	return redisadapter.NewRateLimiter(redis)
}

// ProvideIdempotencyStore creates the idempotency store, or nil without Redis.
func ProvideIdempotencyStore(redis goredis.UniversalClient) outbound.IdempotencyStorePort {
	if redis == nil {
		return nil
	}
	return redisadapter.NewIdempotencyStore(redis)
}

// ProvideMetrics creates a metrics instance registered with the default registry.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New(metricsNamespace, prometheus.DefaultRegisterer)
}

// ===== Notification Domain Providers =====

// NotificationSet provides notification domain dependencies.
var NotificationSet = wire.NewSet(
	postgres.NewNotificationAdapter,
	postgres.NewUserAdapter,
	ProvideEmailSender,
	ProvideRealtime,
	notification.NewNotificationDomain,
)

// ProvideEmailSender selects the email transport.
func ProvideEmailSender(cfg *config.Config, zapLog *zap.Logger) (outbound.EmailSenderPort, error) {
	from := email.Sender{Address: cfg.Email.FromAddress, Name: cfg.Email.FromName}

	switch cfg.Email.Provider {
	case "smtp":
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.SMTP.Host,
			Port:     cfg.Email.SMTP.Port,
			User:     cfg.Email.SMTP.User,
			Password: cfg.Email.SMTP.Password,
		}, from, zapLog), nil
	case "sendgrid":
		if cfg.Email.SendGrid.APIKey == "" {
			return nil, fmt.Errorf("email.sendgrid.api_key is required for the sendgrid provider")
		}
		return email.NewSendGridSender(cfg.Email.SendGrid.APIKey, from, zapLog), nil
	case "", "noop":
		return email.NewNoopSender(zapLog), nil
	default:
		return nil, fmt.Errorf("email.provider: unsupported %q", cfg.Email.Provider)
	}
}

// ProvideRealtime creates the live notification channel, or nil without Redis.
func ProvideRealtime(redis goredis.UniversalClient, zapLog *zap.Logger) outbound.RealtimePort {
	if redis == nil {
		return nil
	}
	return redisadapter.NewRealtime(redis, zapLog)
}

// ===== Payment Domain Providers =====

// PaymentSet provides payment domain dependencies.
var PaymentSet = wire.NewSet(
	postgres.NewPaymentAdapter,
	postgres.NewWebhookEventAdapter,
	postgres.NewTransactorAdapter,
	postgres.NewListingAdapter,
	payment.NewEffectApplier,
	report.NewXLSXReport,
	ProvideGateway,
	ProvideStorage,
	ProvideEventBus,
	wire.Bind(new(outbound.EventPublisherPort), new(*events.Bus)),
	ProvideNotifier,
	ProvidePriceTable,
	ProvidePaymentConfig,
	payment.NewPaymentDomain,
)

// ProvideGateway selects the payment gateway.
func ProvideGateway(cfg *config.Config, client *http.Client, m *metrics.Metrics, zapLog *zap.Logger) (outbound.PaymentGatewayPort, error) {
	switch cfg.Payment.Provider {
	case "paystack":
		if cfg.Paystack.SecretKey == "" {
			return nil, fmt.Errorf("paystack.secret_key is required")
		}
		return paystack.NewClient(paystack.Config{
			SecretKey:       cfg.Paystack.SecretKey,
			BaseURL:         cfg.Paystack.BaseURL,
			BreakerFailures: cfg.Paystack.BreakerFailures,
			BreakerTimeout:  cfg.Paystack.BreakerTimeout,
		}, client, m, zapLog), nil
	case "stripe":
		if cfg.Stripe.SecretKey == "" {
			return nil, fmt.Errorf("stripe.secret_key is required")
		}
		return stripeadapter.NewClient(stripeadapter.Config{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			CancelURL:     cfg.Stripe.CancelURL,
		}, client, m, zapLog), nil
	default:
		return nil, fmt.Errorf("payment.provider: unsupported %q", cfg.Payment.Provider)
	}
}

// ProvideStorage creates the export storage, or nil when no bucket is configured.
func ProvideStorage(cfg *config.Config) (outbound.ExportStoragePort, error) {
	if !cfg.Storage.Enabled() {
		return nil, nil
	}
	client, err := s3adapter.NewClient(context.Background(), s3adapter.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return s3adapter.NewStorageAdapter(client, cfg.Storage.Bucket), nil
}

// ProvideEventBus creates the event bus with the metrics handler and, for the
// sqs driver, the queue forwarder.
func ProvideEventBus(cfg *config.Config, m *metrics.Metrics, zapLog *zap.Logger) (*events.Bus, error) {
	bus := events.NewBus(zapLog)
	bus.Register(metrics.NewPaymentEventHandler(m))

	if cfg.Events.Driver == "sqs" {
		client, err := sqsadapter.NewClient(context.Background(), sqsadapter.Config{
			QueueURL: cfg.Events.SQS.QueueURL,
			Region:   cfg.Events.SQS.Region,
			Endpoint: cfg.Events.SQS.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("init sqs: %w", err)
		}
		bus.Register(sqsadapter.NewForwarder(client, cfg.Events.SQS.QueueURL, zapLog))
	}
	return bus, nil
}

// ProvideNotifier exposes the notification domain to the payment domain.
func ProvideNotifier(domain notification.NotificationDomain) payment.Notifier {
	return domain
}

// ProvidePriceTable builds the fee table from configuration.
func ProvidePriceTable(cfg *config.Config) payment.PriceTable {
	prices := cfg.Payment.Prices
	boost := make(map[int]int64, len(prices.Boost))
	for _, b := range prices.Boost {
		boost[b.Days] = b.Amount
	}
	return payment.PriceTable{
		Listing:    prices.Listing,
		Inspection: prices.Inspection,
		Boost:      boost,
	}
}

// ProvidePaymentConfig extracts payment domain settings.
func ProvidePaymentConfig(cfg *config.Config) payment.Config {
	return payment.Config{
		Currency:        cfg.Payment.Currency,
		CallbackURL:     cfg.Payment.CallbackURL,
		ExportURLExpiry: cfg.Storage.ExportURLExpiry,
	}
}

// ===== HTTP Providers =====

// HandlerSet provides HTTP handlers and their middleware.
var HandlerSet = wire.NewSet(
	ProvideTokenValidator,
	ProvideAdminAuthorizer,
	ProvideRouteMiddleware,
	ProvidePaymentHandler,
	ginadapter.NewPaymentAdminAdapter,
	ProvideWebhookHandler,
	ginadapter.NewNotificationAdapter,
)

// ProvideTokenValidator creates the access token validator.
func ProvideTokenValidator(cfg *config.Config) outbound.TokenValidatorPort {
	return jwtadapter.NewValidator(jwtadapter.Config{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
	})
}

// ProvideAdminAuthorizer creates the admin allow-list.
func ProvideAdminAuthorizer(cfg *config.Config) *middleware.AdminAuthorizer {
	return middleware.NewAdminAuthorizer(cfg.AccessControl.AdminEmails, cfg.AccessControl.AdminUserIDs)
}

// ProvideRouteMiddleware assembles the per-group middleware chains.
func ProvideRouteMiddleware(
	cfg *config.Config,
	validator outbound.TokenValidatorPort,
	authorizer *middleware.AdminAuthorizer,
	limiter outbound.RateLimiterPort,
	idempotency outbound.IdempotencyStorePort,
	log *logger.Logger,
) ginadapter.RouteMiddleware {
	mw := ginadapter.RouteMiddleware{
		Auth: []gin.HandlerFunc{
			middleware.RequireAuth(validator),
			middleware.ResolveRole(authorizer),
		},
		Admin: middleware.RequireAdmin(),
	}
	if limiter != nil {
		mw.PublicLimit = middleware.RateLimitByIP(limiter, cfg.RateLimit.PublicLimit, cfg.RateLimit.PublicWindow, log)
		mw.UserLimit = middleware.RateLimitByUser(limiter, cfg.RateLimit.UserLimit, cfg.RateLimit.UserWindow, log)
	}
	if idempotency != nil {
		mw.Idempotency = middleware.Idempotency(idempotency, middleware.IdempotencyConfig{
			TTL:    cfg.RateLimit.IdempotencyTTL,
			Logger: log,
		})
	}
	return mw
}

// ProvidePaymentHandler creates the payment HTTP handler.
func ProvidePaymentHandler(domain payment.PaymentDomain, m *metrics.Metrics, log *logger.Logger) inbound.PaymentHttpPort {
	return ginadapter.NewPaymentAdapter(domain, m, log)
}

// ProvideWebhookHandler creates the gateway webhook handler.
func ProvideWebhookHandler(cfg *config.Config, domain payment.PaymentDomain, m *metrics.Metrics, log *logger.Logger) inbound.WebhookHttpPort {
	return ginadapter.NewWebhookAdapter(domain, cfg.Payment.Provider, m, log)
}

// ===== All Providers =====

// AppSet combines all provider sets.
var AppSet = wire.NewSet(
	InfraSet,
	NotificationSet,
	PaymentSet,
	HandlerSet,
)
