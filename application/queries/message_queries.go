package queries

import (
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// GetMessageQuery fetches a single message by identifier
type GetMessageQuery struct {
	Identifier string `validate:"required"`
}

// Validate validates the query
func (q GetMessageQuery) Validate() error {
	if q.Identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	return nil
}

// ListMessagesByResourceQuery returns the conversation attached to a
// resource within a customer
type ListMessagesByResourceQuery struct {
	CustomerURI        string `validate:"required,url"`
	ResourceIdentifier string `validate:"required"`
}

// Validate validates the query
func (q ListMessagesByResourceQuery) Validate() error {
	if q.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	if q.ResourceIdentifier == "" {
		return pkgerrors.NewValidationError("resource identifier is required")
	}
	return nil
}
