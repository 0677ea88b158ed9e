package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/commands/bus"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
)

// MessageLifecycleHandler flags messages as read
type MessageLifecycleHandler struct {
	messages ports.MessageRepository
	logger   *zap.Logger
}

// NewMessageLifecycleHandler creates a new handler instance
func NewMessageLifecycleHandler(messages ports.MessageRepository, logger *zap.Logger) *MessageLifecycleHandler {
	return &MessageLifecycleHandler{messages: messages, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *MessageLifecycleHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.MarkMessageReadCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	identifier, err := parseIdentifier(c.Identifier)
	if err != nil {
		return err
	}
	expectedVersion, err := parseVersion(c.ExpectedVersion)
	if err != nil {
		return err
	}

	message, err := h.messages.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	message.MarkRead()

	return h.messages.Update(ctx, message, expectedVersion)
}
