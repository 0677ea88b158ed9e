package commands

import (
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// CreateTicketCommand opens a workflow request against a resource
type CreateTicketCommand struct {
	TicketType         string `json:"ticketType" validate:"required,oneof=DoiRequest PublishingRequest"`
	ResourceIdentifier string `json:"resourceIdentifier" validate:"required"`
	Owner              string `json:"owner" validate:"required"`
	CustomerURI        string `json:"customerId" validate:"required,uri"`
}

// Validate validates the command
func (cmd CreateTicketCommand) Validate() error {
	if cmd.TicketType == "" {
		return pkgerrors.NewValidationError("ticket type is required")
	}
	if cmd.ResourceIdentifier == "" {
		return pkgerrors.NewValidationError("resource identifier is required")
	}
	if cmd.Owner == "" {
		return pkgerrors.NewValidationError("owner is required")
	}
	if cmd.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	return nil
}

// CompleteTicketCommand moves a pending ticket to COMPLETED
type CompleteTicketCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd CompleteTicketCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}

// CloseTicketCommand moves a pending ticket to CLOSED
type CloseTicketCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd CloseTicketCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}

// MarkTicketViewedCommand flags a ticket as seen by the resource owner
type MarkTicketViewedCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd MarkTicketViewedCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}
