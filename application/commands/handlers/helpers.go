package handlers

import (
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func parseIdentifier(s string) (publication.SortableIdentifier, error) {
	identifier, err := publication.ParseSortableIdentifier(s)
	if err != nil {
		return publication.SortableIdentifier{}, pkgerrors.NewValidationError("malformed identifier").WithCause(err)
	}
	return identifier, nil
}

func parseVersion(s string) (publication.RowVersion, error) {
	version, err := publication.ParseRowVersion(s)
	if err != nil {
		return publication.RowVersion{}, pkgerrors.NewValidationError("malformed row version").WithCause(err)
	}
	return version, nil
}

func parseCustomer(uri string) (publication.CustomerID, error) {
	customer, err := publication.NewCustomerID(uri)
	if err != nil {
		return publication.CustomerID{}, pkgerrors.NewValidationError("malformed customer URI").WithCause(err)
	}
	return customer, nil
}
