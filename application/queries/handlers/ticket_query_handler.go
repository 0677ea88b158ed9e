package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries/bus"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// TicketQueryHandler serves ticket reads
type TicketQueryHandler struct {
	tickets ports.TicketRepository
	logger  *zap.Logger
}

// NewTicketQueryHandler creates a new handler instance
func NewTicketQueryHandler(tickets ports.TicketRepository, logger *zap.Logger) *TicketQueryHandler {
	return &TicketQueryHandler{tickets: tickets, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *TicketQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetTicketQuery:
		return h.get(ctx, q)
	case queries.ListTicketsByStatusQuery:
		return h.listByStatus(ctx, q)
	case queries.ListTicketsByResourceQuery:
		return h.listByResource(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

func (h *TicketQueryHandler) get(ctx context.Context, q queries.GetTicketQuery) (*queries.TicketResult, error) {
	identifier, err := parseIdentifier(q.Identifier)
	if err != nil {
		return nil, err
	}
	ticket, err := h.tickets.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return queries.NewTicketResult(ticket), nil
}

func (h *TicketQueryHandler) listByStatus(ctx context.Context, q queries.ListTicketsByStatusQuery) (*queries.TicketListResult, error) {
	customer, err := parseCustomer(q.CustomerURI)
	if err != nil {
		return nil, err
	}

	page, err := h.tickets.ListByCustomerAndStatus(ctx, customer, publication.TicketStatus(q.Status), q.EffectivePageSize(), q.Cursor)
	if err != nil {
		return nil, err
	}

	result := &queries.TicketListResult{
		Items:      make([]*queries.TicketResult, 0, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for _, ticket := range page.Items {
		result.Items = append(result.Items, queries.NewTicketResult(ticket))
	}
	return result, nil
}

func (h *TicketQueryHandler) listByResource(ctx context.Context, q queries.ListTicketsByResourceQuery) (*queries.TicketListResult, error) {
	customer, err := parseCustomer(q.CustomerURI)
	if err != nil {
		return nil, err
	}
	resourceIdentifier, err := parseIdentifier(q.ResourceIdentifier)
	if err != nil {
		return nil, err
	}

	tickets, err := h.tickets.ListByResource(ctx, customer, resourceIdentifier)
	if err != nil {
		return nil, err
	}

	result := &queries.TicketListResult{Items: make([]*queries.TicketResult, 0, len(tickets))}
	for _, ticket := range tickets {
		result.Items = append(result.Items, queries.NewTicketResult(ticket))
	}
	return result, nil
}
