package queries

import (
	"fmt"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// GetTicketQuery fetches a single ticket by identifier
type GetTicketQuery struct {
	Identifier string `validate:"required"`
}

// Validate validates the query
func (q GetTicketQuery) Validate() error {
	if q.Identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	return nil
}

// ListTicketsByStatusQuery pages through a customer's tickets in a
// given status
type ListTicketsByStatusQuery struct {
	CustomerURI string `validate:"required,url"`
	Status      string `validate:"required"`
	PageSize    int    `validate:"omitempty,min=1,max=500"`
	Cursor      string
}

// Validate validates the query
func (q ListTicketsByStatusQuery) Validate() error {
	if q.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	switch publication.TicketStatus(q.Status) {
	case publication.TicketStatusPending, publication.TicketStatusCompleted, publication.TicketStatusClosed:
	default:
		return pkgerrors.NewValidationError(fmt.Sprintf("unknown ticket status: %s", q.Status))
	}
	if q.PageSize < 0 || q.PageSize > maxPageSize {
		return pkgerrors.NewValidationError(fmt.Sprintf("page size must be between 1 and %d", maxPageSize))
	}
	return nil
}

// EffectivePageSize returns the requested page size or the default
func (q ListTicketsByStatusQuery) EffectivePageSize() int {
	if q.PageSize == 0 {
		return defaultPageSize
	}
	return q.PageSize
}

// ListTicketsByResourceQuery returns every ticket attached to a
// resource within a customer
type ListTicketsByResourceQuery struct {
	CustomerURI        string `validate:"required,url"`
	ResourceIdentifier string `validate:"required"`
}

// Validate validates the query
func (q ListTicketsByResourceQuery) Validate() error {
	if q.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	if q.ResourceIdentifier == "" {
		return pkgerrors.NewValidationError("resource identifier is required")
	}
	return nil
}
