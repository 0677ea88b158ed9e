package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// CreateTicketHandler handles the CreateTicketCommand
type CreateTicketHandler struct {
	tickets ports.TicketRepository
	logger  *zap.Logger
}

// NewCreateTicketHandler creates a new handler instance
func NewCreateTicketHandler(tickets ports.TicketRepository, logger *zap.Logger) *CreateTicketHandler {
	return &CreateTicketHandler{tickets: tickets, logger: logger}
}

// Handle opens a workflow request and returns the pending ticket
func (h *CreateTicketHandler) Handle(ctx context.Context, cmd commands.CreateTicketCommand) (*publication.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	resourceIdentifier, err := parseIdentifier(cmd.ResourceIdentifier)
	if err != nil {
		return nil, err
	}
	customer, err := parseCustomer(cmd.CustomerURI)
	if err != nil {
		return nil, err
	}

	ticket, err := publication.NewTicket(publication.TicketType(cmd.TicketType), resourceIdentifier, cmd.Owner, customer)
	if err != nil {
		return nil, err
	}

	if err := h.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}
