package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries/bus"
)

// MessageQueryHandler serves message reads
type MessageQueryHandler struct {
	messages ports.MessageRepository
	logger   *zap.Logger
}

// NewMessageQueryHandler creates a new handler instance
func NewMessageQueryHandler(messages ports.MessageRepository, logger *zap.Logger) *MessageQueryHandler {
	return &MessageQueryHandler{messages: messages, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *MessageQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetMessageQuery:
		return h.get(ctx, q)
	case queries.ListMessagesByResourceQuery:
		return h.listByResource(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

func (h *MessageQueryHandler) get(ctx context.Context, q queries.GetMessageQuery) (*queries.MessageResult, error) {
	identifier, err := parseIdentifier(q.Identifier)
	if err != nil {
		return nil, err
	}
	message, err := h.messages.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return queries.NewMessageResult(message), nil
}

func (h *MessageQueryHandler) listByResource(ctx context.Context, q queries.ListMessagesByResourceQuery) (*queries.MessageListResult, error) {
	customer, err := parseCustomer(q.CustomerURI)
	if err != nil {
		return nil, err
	}
	resourceIdentifier, err := parseIdentifier(q.ResourceIdentifier)
	if err != nil {
		return nil, err
	}

	messages, err := h.messages.ListByResource(ctx, customer, resourceIdentifier)
	if err != nil {
		return nil, err
	}

	result := &queries.MessageListResult{Items: make([]*queries.MessageResult, 0, len(messages))}
	for _, message := range messages {
		result.Items = append(result.Items, queries.NewMessageResult(message))
	}
	return result, nil
}
