package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// CreateResourceHandler handles the CreateResourceCommand
type CreateResourceHandler struct {
	resources ports.ResourceRepository
	logger    *zap.Logger
}

// NewCreateResourceHandler creates a new handler instance
func NewCreateResourceHandler(resources ports.ResourceRepository, logger *zap.Logger) *CreateResourceHandler {
	return &CreateResourceHandler{resources: resources, logger: logger}
}

// Handle executes the create resource command and returns the created
// draft
func (h *CreateResourceHandler) Handle(ctx context.Context, cmd commands.CreateResourceCommand) (*publication.Resource, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	customer, err := parseCustomer(cmd.CustomerURI)
	if err != nil {
		return nil, err
	}

	resource, err := publication.NewResource(cmd.Owner, customer, cmd.Title)
	if err != nil {
		return nil, err
	}
	if cmd.Metadata != nil {
		resource.SetMetadata(cmd.Metadata)
	}

	if err := h.resources.Create(ctx, resource); err != nil {
		return nil, err
	}

	return resource, nil
}
