//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTableConfig,
	ProvideChangePublisher,
	ProvideResourceRepository,
	ProvideTicketRepository,
	ProvideMessageRepository,
	ProvideMetrics,
	ProvideTracer,
	ProvideCreateResourceHandler,
	ProvideUpdateResourceHandler,
	ProvideCreateTicketHandler,
	ProvideCreateMessageHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
