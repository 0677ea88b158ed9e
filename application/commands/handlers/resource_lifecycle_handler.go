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

// ResourceLifecycleHandler drives the resource status state machine:
// publish, mark for deletion, restore and physical delete. It is
// registered on the command bus for all four command types.
type ResourceLifecycleHandler struct {
	resources ports.ResourceRepository
	logger    *zap.Logger
}

// NewResourceLifecycleHandler creates a new handler instance
func NewResourceLifecycleHandler(resources ports.ResourceRepository, logger *zap.Logger) *ResourceLifecycleHandler {
	return &ResourceLifecycleHandler{resources: resources, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *ResourceLifecycleHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.PublishResourceCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, (*publication.Resource).Publish)
	case commands.MarkResourceForDeletionCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, (*publication.Resource).MarkForDeletion)
	case commands.RestoreResourceCommand:
		return h.transition(ctx, c.Identifier, c.ExpectedVersion, (*publication.Resource).Restore)
	case commands.DeleteResourceCommand:
		return h.delete(ctx, c)
	default:
		return fmt.Errorf("unexpected command type %T", cmd)
	}
}

func (h *ResourceLifecycleHandler) transition(ctx context.Context, rawIdentifier, rawVersion string, apply func(*publication.Resource) error) error {
	identifier, err := parseIdentifier(rawIdentifier)
	if err != nil {
		return err
	}
	expectedVersion, err := parseVersion(rawVersion)
	if err != nil {
		return err
	}

	resource, err := h.resources.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if err := apply(resource); err != nil {
		return err
	}

	return h.resources.Update(ctx, resource, expectedVersion)
}

func (h *ResourceLifecycleHandler) delete(ctx context.Context, cmd commands.DeleteResourceCommand) error {
	identifier, err := parseIdentifier(cmd.Identifier)
	if err != nil {
		return err
	}
	return h.resources.Delete(ctx, identifier, cmd.ActingOwner)
}
