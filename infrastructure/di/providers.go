package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/commands/bus"
	commandhandlers "github.com/axthosarouris/nva-publication-api-sub001/application/commands/handlers"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries"
	querybus "github.com/axthosarouris/nva-publication-api-sub001/application/queries/bus"
	queryhandlers "github.com/axthosarouris/nva-publication-api-sub001/application/queries/handlers"
	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/config"
	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/messaging/eventbridge"
	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/persistence/dynamodb"
	"github.com/axthosarouris/nva-publication-api-sub001/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, with X-Ray
// instrumentation on every SDK client when tracing is enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTableConfig maps application configuration onto the registry
// table layout
func ProvideTableConfig(cfg *config.Config) dynamodb.TableConfig {
	return dynamodb.TableConfig{
		TableName:                 cfg.DynamoDBTable,
		ByTypeCustomerStatusIndex: cfg.ByTypeCustomerStatusIndex,
		ByCustomerResourceIndex:   cfg.ByCustomerResourceIndex,
		ByTypeAndIdentifierIndex:  cfg.ByTypeAndIdentifierIndex,
		ByCristinIdentifierIndex:  cfg.ByCristinIdentifierIndex,
	}
}

// ProvideChangePublisher creates the EventBridge change publisher
func ProvideChangePublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.ChangePublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, cfg.EventSource, logger)
}

// ProvideResourceRepository creates the resource repository
func ProvideResourceRepository(
	client *awsdynamodb.Client,
	tableCfg dynamodb.TableConfig,
	publisher ports.ChangePublisher,
	logger *zap.Logger,
) ports.ResourceRepository {
	return dynamodb.NewResourceRepository(client, tableCfg, publisher, logger)
}

// ProvideTicketRepository creates the ticket repository
func ProvideTicketRepository(
	client *awsdynamodb.Client,
	tableCfg dynamodb.TableConfig,
	publisher ports.ChangePublisher,
	logger *zap.Logger,
) ports.TicketRepository {
	return dynamodb.NewTicketRepository(client, tableCfg, publisher, logger)
}

// ProvideMessageRepository creates the message repository
func ProvideMessageRepository(
	client *awsdynamodb.Client,
	tableCfg dynamodb.TableConfig,
	publisher ports.ChangePublisher,
	logger *zap.Logger,
) ports.MessageRepository {
	return dynamodb.NewMessageRepository(client, tableCfg, publisher, logger)
}

// ProvideMetrics creates the metrics instance. Returns nil when
// metrics are disabled; Metrics methods are nil-safe.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("NVA/Publication/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("publication-api")
}

// ProvideCreateResourceHandler creates the typed create handler
func ProvideCreateResourceHandler(resources ports.ResourceRepository, logger *zap.Logger) *commandhandlers.CreateResourceHandler {
	return commandhandlers.NewCreateResourceHandler(resources, logger)
}

// ProvideUpdateResourceHandler creates the typed update handler
func ProvideUpdateResourceHandler(resources ports.ResourceRepository, logger *zap.Logger) *commandhandlers.UpdateResourceHandler {
	return commandhandlers.NewUpdateResourceHandler(resources, logger)
}

// ProvideCreateTicketHandler creates the typed ticket create handler
func ProvideCreateTicketHandler(tickets ports.TicketRepository, logger *zap.Logger) *commandhandlers.CreateTicketHandler {
	return commandhandlers.NewCreateTicketHandler(tickets, logger)
}

// ProvideCreateMessageHandler creates the typed message create handler
func ProvideCreateMessageHandler(messages ports.MessageRepository, logger *zap.Logger) *commandhandlers.CreateMessageHandler {
	return commandhandlers.NewCreateMessageHandler(messages, logger)
}

// ProvideCommandBus creates a command bus with logging, metrics and
// tracing middleware applied and the lifecycle handlers registered
func ProvideCommandBus(
	cfg *config.Config,
	resources ports.ResourceRepository,
	tickets ports.TicketRepository,
	messages ports.MessageRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	middleware := []bus.Middleware{
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	}
	if cfg.EnableTracing {
		middleware = append(middleware, bus.TracingMiddleware(tracer))
	}
	commandBus := bus.NewCommandBus(middleware...)

	resourceLifecycle := commandhandlers.NewResourceLifecycleHandler(resources, logger)
	for _, cmd := range []bus.Command{
		commands.PublishResourceCommand{},
		commands.MarkResourceForDeletionCommand{},
		commands.RestoreResourceCommand{},
		commands.DeleteResourceCommand{},
	} {
		if err := commandBus.Register(cmd, resourceLifecycle); err != nil {
			return nil, err
		}
	}

	ticketLifecycle := commandhandlers.NewTicketLifecycleHandler(tickets, logger)
	for _, cmd := range []bus.Command{
		commands.CompleteTicketCommand{},
		commands.CloseTicketCommand{},
		commands.MarkTicketViewedCommand{},
	} {
		if err := commandBus.Register(cmd, ticketLifecycle); err != nil {
			return nil, err
		}
	}

	messageLifecycle := commandhandlers.NewMessageLifecycleHandler(messages, logger)
	if err := commandBus.Register(commands.MarkMessageReadCommand{}, messageLifecycle); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with logging, metrics and
// tracing middleware applied and the read handlers registered
func ProvideQueryBus(
	cfg *config.Config,
	resources ports.ResourceRepository,
	tickets ports.TicketRepository,
	messages ports.MessageRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	middleware := []querybus.Middleware{
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	}
	if cfg.EnableTracing {
		middleware = append(middleware, querybus.TracingMiddleware(tracer))
	}
	queryBus := querybus.NewQueryBus(middleware...)

	resourceQueries := queryhandlers.NewResourceQueryHandler(resources, logger)
	for _, q := range []querybus.Query{
		queries.GetResourceQuery{},
		queries.ListResourcesByStatusQuery{},
	} {
		if err := queryBus.Register(q, resourceQueries); err != nil {
			return nil, err
		}
	}

	ticketQueries := queryhandlers.NewTicketQueryHandler(tickets, logger)
	for _, q := range []querybus.Query{
		queries.GetTicketQuery{},
		queries.ListTicketsByStatusQuery{},
		queries.ListTicketsByResourceQuery{},
	} {
		if err := queryBus.Register(q, ticketQueries); err != nil {
			return nil, err
		}
	}

	messageQueries := queryhandlers.NewMessageQueryHandler(messages, logger)
	for _, q := range []querybus.Query{
		queries.GetMessageQuery{},
		queries.ListMessagesByResourceQuery{},
	} {
		if err := queryBus.Register(q, messageQueries); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}
