package commands

import (
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// CreateResourceCommand creates a new draft publication
type CreateResourceCommand struct {
	Owner       string                 `json:"owner" validate:"required"`
	CustomerURI string                 `json:"customerId" validate:"required,uri"`
	Title       string                 `json:"mainTitle" validate:"required,min=1,max=500"`
	Metadata    map[string]interface{} `json:"entityDescription"`
}

// Validate validates the command
func (cmd CreateResourceCommand) Validate() error {
	if cmd.Owner == "" {
		return pkgerrors.NewValidationError("owner is required")
	}
	if cmd.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	if cmd.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	return nil
}

// UpdateResourceCommand replaces the mutable fields of a publication.
// ExpectedVersion is the row version the caller read; a stale value
// makes the update fail with a conflict.
type UpdateResourceCommand struct {
	Identifier      string                 `json:"identifier" validate:"required"`
	ExpectedVersion string                 `json:"expectedVersion" validate:"required"`
	Title           string                 `json:"mainTitle" validate:"required,min=1,max=500"`
	Metadata        map[string]interface{} `json:"entityDescription"`
}

// Validate validates the command
func (cmd UpdateResourceCommand) Validate() error {
	if cmd.Identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	if cmd.ExpectedVersion == "" {
		return pkgerrors.NewValidationError("expected version is required")
	}
	if cmd.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	return nil
}

// PublishResourceCommand moves a draft to PUBLISHED
type PublishResourceCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd PublishResourceCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}

// MarkResourceForDeletionCommand moves a draft to DRAFT_FOR_DELETION
type MarkResourceForDeletionCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd MarkResourceForDeletionCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}

// RestoreResourceCommand moves a DRAFT_FOR_DELETION resource back to
// DRAFT
type RestoreResourceCommand struct {
	Identifier      string `json:"identifier" validate:"required"`
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Validate validates the command
func (cmd RestoreResourceCommand) Validate() error {
	return validateLifecycle(cmd.Identifier, cmd.ExpectedVersion)
}

// DeleteResourceCommand physically removes a deletable draft
type DeleteResourceCommand struct {
	Identifier  string `json:"identifier" validate:"required"`
	ActingOwner string `json:"actingOwner" validate:"required"`
}

// Validate validates the command
func (cmd DeleteResourceCommand) Validate() error {
	if cmd.Identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	if cmd.ActingOwner == "" {
		return pkgerrors.NewValidationError("acting owner is required")
	}
	return nil
}

func validateLifecycle(identifier, expectedVersion string) error {
	if identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	if expectedVersion == "" {
		return pkgerrors.NewValidationError("expected version is required")
	}
	return nil
}
