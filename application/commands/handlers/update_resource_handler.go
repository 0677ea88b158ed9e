package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// UpdateResourceHandler handles the UpdateResourceCommand
type UpdateResourceHandler struct {
	resources ports.ResourceRepository
	logger    *zap.Logger
}

// NewUpdateResourceHandler creates a new handler instance
func NewUpdateResourceHandler(resources ports.ResourceRepository, logger *zap.Logger) *UpdateResourceHandler {
	return &UpdateResourceHandler{resources: resources, logger: logger}
}

// Handle replaces the mutable fields of the resource under optimistic
// concurrency and returns the stored result
func (h *UpdateResourceHandler) Handle(ctx context.Context, cmd commands.UpdateResourceCommand) (*publication.Resource, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	identifier, err := parseIdentifier(cmd.Identifier)
	if err != nil {
		return nil, err
	}
	expectedVersion, err := parseVersion(cmd.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	resource, err := h.resources.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	resource.SetTitle(cmd.Title)
	if cmd.Metadata != nil {
		resource.SetMetadata(cmd.Metadata)
	}

	if err := h.resources.Update(ctx, resource, expectedVersion); err != nil {
		return nil, err
	}

	return resource, nil
}
