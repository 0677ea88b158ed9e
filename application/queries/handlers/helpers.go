package handlers

import (
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func parseIdentifier(raw string) (publication.SortableIdentifier, error) {
	identifier, err := publication.ParseSortableIdentifier(raw)
	if err != nil {
		return publication.SortableIdentifier{}, pkgerrors.NewValidationError("malformed identifier").WithCause(err)
	}
	return identifier, nil
}

func parseCustomer(raw string) (publication.CustomerID, error) {
	customer, err := publication.NewCustomerID(raw)
	if err != nil {
		return publication.CustomerID{}, pkgerrors.NewValidationError("malformed customer URI").WithCause(err)
	}
	return customer, nil
}
