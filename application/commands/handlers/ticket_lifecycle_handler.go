package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/commands/bus"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// TicketLifecycleHandler drives the ticket workflow: complete, close
// and the viewed-by-owner flag.
type TicketLifecycleHandler struct {
	tickets ports.TicketRepository
	logger  *zap.Logger
}

// NewTicketLifecycleHandler creates a new handler instance
func NewTicketLifecycleHandler(tickets ports.TicketRepository, logger *zap.Logger) *TicketLifecycleHandler {
	return &TicketLifecycleHandler{tickets: tickets, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *TicketLifecycleHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.CompleteTicketCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, func(t *publication.Ticket) error {
			return t.Complete()
		})
	case commands.CloseTicketCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, func(t *publication.Ticket) error {
			return t.Close()
		})
	case commands.MarkTicketViewedCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, func(t *publication.Ticket) error {
			t.MarkViewedByOwner()
			return nil
		})
	default:
		return fmt.Errorf("unexpected command type %T", cmd)
	}
}

func (h *TicketLifecycleHandler) transition(ctx context.Context, rawIdentifier, rawVersion string, apply func(*publication.Ticket) error) error {
	identifier, err := parseIdentifier(rawIdentifier)
	if err != nil {
		return err
	}
	expectedVersion, err := parseVersion(rawVersion)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if err := apply(ticket); err != nil {
		return err
	}

	return h.tickets.Update(ctx, ticket, expectedVersion)
}
