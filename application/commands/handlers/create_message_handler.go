package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// CreateMessageHandler handles the CreateMessageCommand
type CreateMessageHandler struct {
	messages ports.MessageRepository
	logger   *zap.Logger
}

// NewCreateMessageHandler creates a new handler instance
func NewCreateMessageHandler(messages ports.MessageRepository, logger *zap.Logger) *CreateMessageHandler {
	return &CreateMessageHandler{messages: messages, logger: logger}
}

// Handle adds a conversation entry and returns it
func (h *CreateMessageHandler) Handle(ctx context.Context, cmd commands.CreateMessageCommand) (*publication.Message, error) {
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

	message, err := publication.NewMessage(cmd.Sender, resourceIdentifier, customer, publication.MessageKind(cmd.Kind), cmd.Text)
	if err != nil {
		return nil, err
	}

	if err := h.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}
