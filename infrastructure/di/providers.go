package di

import (
	"context"
	"fmt"

	"ntlango-api/application/ports"
	"ntlango-api/infrastructure/config"
	"ntlango-api/infrastructure/identity"
	"ntlango-api/infrastructure/messaging/eventbridge"
	"ntlango-api/infrastructure/persistence/dynamodb"
	"ntlango-api/interfaces/http/rest/handlers"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideErrorHandler creates the centralized error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideEventRepository creates the event repository
func ProvideEventRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EventRepository {
	return dynamodb.NewEventRepository(client, cfg.EventsTable, logger)
}

// ProvideIdentityProvider creates the identity provider client
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return identity.NewCognitoClient(client, cfg.CognitoClientID, cfg.CognitoUserPoolID, logger)
}

// ProvideEventPublisher creates the lifecycle notification publisher.
// With metrics or an event bus disabled the publisher still exists; it only
// logs the entries it cannot deliver.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics sink. The CloudWatch client is only
// attached when the feature flag is on; otherwise every record is a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Ntlango/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil, logger)
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideTracer creates the tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("ntlango-api")
}

// ProvideEventHandler creates the event handler
func ProvideEventHandler(repo ports.EventRepository, publisher ports.EventPublisher, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.EventHandler {
	return handlers.NewEventHandler(repo, publisher, errorHandler, logger)
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(provider ports.IdentityProvider, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(provider, errorHandler, logger)
}

// ProvideProfileHandler creates the profile handler
func ProvideProfileHandler(provider ports.IdentityProvider, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.ProfileHandler {
	return handlers.NewProfileHandler(provider, errorHandler, logger)
}

// ProvideHealthHandler creates the health handler
func ProvideHealthHandler() *handlers.HealthHandler {
	return handlers.NewHealthHandler()
}
