package commands

import (
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// CreateMessageCommand adds a conversation entry to a resource
type CreateMessageCommand struct {
	Sender             string `json:"sender" validate:"required"`
	ResourceIdentifier string `json:"resourceIdentifier" validate:"required"`
	CustomerURI        string `json:"customerId" validate:"required,uri"`
	Kind               string `json:"messageKind" validate:"required,oneof=SUPPORT DOI_REQUEST"`
	Text               string `json:"text" validate:"required,min=1,max=10000"`
}

// Validate validates the command
func (cmd CreateMessageCommand) Validate() error {
	if cmd.Sender == "" {
		return pkgerrors.NewValidationError("sender is required")
	}
	if cmd.ResourceIdentifier == "" {
		return pkgerrors.NewValidationError("resource identifier is required")
	}
	if cmd.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	if cmd.Text == "" {
		return pkgerrors.NewValidationError("text is required")
	}
	return nil
}

// MarkMessageReadCommand flags a message as read by the recipient
type MarkMessageReadCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd MarkMessageReadCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}
