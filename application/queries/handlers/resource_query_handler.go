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

// ResourceQueryHandler serves resource reads. Registered on the query
// bus for GetResourceQuery and ListResourcesByStatusQuery.
type ResourceQueryHandler struct {
	resources ports.ResourceRepository
	logger    *zap.Logger
}

// NewResourceQueryHandler creates a new handler instance
func NewResourceQueryHandler(resources ports.ResourceRepository, logger *zap.Logger) *ResourceQueryHandler {
	return &ResourceQueryHandler{resources: resources, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *ResourceQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetResourceQuery:
		return h.get(ctx, q)
	case queries.ListResourcesByStatusQuery:
		return h.listByStatus(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

func (h *ResourceQueryHandler) get(ctx context.Context, q queries.GetResourceQuery) (*queries.ResourceResult, error) {
	identifier, err := parseIdentifier(q.Identifier)
	if err != nil {
		return nil, err
	}
	resource, err := h.resources.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return queries.NewResourceResult(resource), nil
}

func (h *ResourceQueryHandler) listByStatus(ctx context.Context, q queries.ListResourcesByStatusQuery) (*queries.ResourceListResult, error) {
	customer, err := parseCustomer(q.CustomerURI)
	if err != nil {
		return nil, err
	}

	page, err := h.resources.ListByCustomerAndStatus(ctx, customer, publication.ResourceStatus(q.Status), q.EffectivePageSize(), q.Cursor)
	if err != nil {
		return nil, err
	}

	result := &queries.ResourceListResult{
		Items:      make([]*queries.ResourceResult, 0, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for _, resource := range page.Items {
		result.Items = append(result.Items, queries.NewResourceResult(resource))
	}
	return result, nil
}
