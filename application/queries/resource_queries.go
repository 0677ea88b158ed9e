package queries

import (
	"fmt"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GetResourceQuery fetches a single resource by identifier
type GetResourceQuery struct {
	Identifier string `validate:"required"`
}

// Validate validates the query
func (q GetResourceQuery) Validate() error {
	if q.Identifier == "" {
		return pkgerrors.NewValidationError("identifier is required")
	}
	return nil
}

// ListResourcesByStatusQuery pages through a customer's resources in a
// given status
type ListResourcesByStatusQuery struct {
	CustomerURI string `validate:"required,url"`
	Status      string `validate:"required"`
	PageSize    int    `validate:"omitempty,min=1,max=500"`
	Cursor      string
}

// Validate validates the query
func (q ListResourcesByStatusQuery) Validate() error {
	if q.CustomerURI == "" {
		return pkgerrors.NewValidationError("customer is required")
	}
	switch publication.ResourceStatus(q.Status) {
	case publication.ResourceStatusDraft, publication.ResourceStatusPublished, publication.ResourceStatusDraftForDeletion:
	default:
		return pkgerrors.NewValidationError(fmt.Sprintf("unknown resource status: %s", q.Status))
	}
	if q.PageSize < 0 || q.PageSize > maxPageSize {
		return pkgerrors.NewValidationError(fmt.Sprintf("page size must be between 1 and %d", maxPageSize))
	}
	return nil
}

// EffectivePageSize returns the requested page size or the default
func (q ListResourcesByStatusQuery) EffectivePageSize() int {
	if q.PageSize == 0 {
		return defaultPageSize
	}
	return q.PageSize
}
