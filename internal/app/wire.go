//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
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

	// Infrastructure
	"github.com/propmarket/server/internal/infra/config"

	// Utils
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/metrics"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     goredis.UniversalClient
	Logger    *logger.Logger
	ZapLogger *zap.Logger
	Metrics   *metrics.Metrics

	// Domains
	PaymentDomain      payment.PaymentDomain
	NotificationDomain notification.NotificationDomain

	// HTTP Handlers
	PaymentHandler      inbound.PaymentHttpPort
	PaymentAdminHandler inbound.PaymentAdminHttpPort
	WebhookHandler      inbound.WebhookHttpPort
	NotificationHandler inbound.NotificationHttpPort
	RouteMiddleware     ginadapter.RouteMiddleware
}

// InitializeDependencies creates all dependencies using Wire.
func InitializeDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil, nil
}
