//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"ntlango-api/application/ports"
	"ntlango-api/infrastructure/config"
	"ntlango-api/interfaces/http/rest/handlers"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ErrorHandler   *apperrors.ErrorHandler
	EventRepo      ports.EventRepository
	Identity       ports.IdentityProvider
	Publisher      ports.EventPublisher
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	EventHandler   *handlers.EventHandler
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	HealthHandler  *handlers.HealthHandler
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideErrorHandler,
	ProvideEventRepository,
	ProvideIdentityProvider,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideEventHandler,
	ProvideAuthHandler,
	ProvideProfileHandler,
	ProvideHealthHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
