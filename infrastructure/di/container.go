package di

import (
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands/bus"
	commandhandlers "github.com/axthosarouris/nva-publication-api-sub001/application/commands/handlers"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	querybus "github.com/axthosarouris/nva-publication-api-sub001/application/queries/bus"
	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/config"
	"github.com/axthosarouris/nva-publication-api-sub001/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *zap.Logger
	Resources             ports.ResourceRepository
	Tickets               ports.TicketRepository
	Messages              ports.MessageRepository
	ChangePublisher       ports.ChangePublisher
	CreateResourceHandler *commandhandlers.CreateResourceHandler
	UpdateResourceHandler *commandhandlers.UpdateResourceHandler
	CreateTicketHandler   *commandhandlers.CreateTicketHandler
	CreateMessageHandler  *commandhandlers.CreateMessageHandler
	CommandBus            *bus.CommandBus
	QueryBus              *querybus.QueryBus
	Metrics               *observability.Metrics
	Tracer                *observability.Tracer
}
