package dynamodb

import (
	"fmt"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// Key derivation for the single-table layout. Every key is a pure
// function of entity attributes with the entity type as the leading
// segment, so entities of different types can never collide.
//
// Attribute layout:
//
//	PK0/SK0  primary         TYPE:customerIdentifier:owner / TYPE:identifier
//	PK1/SK1  type+customer+status index
//	PK2/SK2  customer+resource index
//	PK3/SK3  type+identifier index
//	PK4/SK4  Cristin identifier index (resources only)

const (
	keyAttrPK0 = "PK0"
	keyAttrSK0 = "SK0"
	keyAttrPK1 = "PK1"
	keyAttrSK1 = "SK1"
	keyAttrPK2 = "PK2"
	keyAttrSK2 = "SK2"
	keyAttrPK3 = "PK3"
	keyAttrSK3 = "SK3"
	keyAttrPK4 = "PK4"
	keyAttrSK4 = "SK4"
)

func primaryPartitionKey(entityType publication.Type, customer publication.CustomerID, owner string) string {
	return fmt.Sprintf("%s:%s:%s", entityType, customer.Identifier(), owner)
}

func primarySortKey(entityType publication.Type, identifier publication.SortableIdentifier) string {
	return fmt.Sprintf("%s:%s", entityType, identifier.String())
}

func byTypeCustomerStatusPartitionKey(entityType publication.Type, customer publication.CustomerID, status string) string {
	return fmt.Sprintf("%s:Customer:%s:Status:%s", entityType, customer.Identifier(), status)
}

// byTypeCustomerStatusSortKey mirrors the primary sort key so the
// index doubles as an identifier lookup.
func byTypeCustomerStatusSortKey(entityType publication.Type, identifier publication.SortableIdentifier) string {
	return primarySortKey(entityType, identifier)
}

func byCustomerResourcePartitionKey(customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) string {
	return fmt.Sprintf("Customer:%s:Resource:%s", customer.Identifier(), resourceIdentifier.String())
}

func byCustomerResourceSortKey(entityType publication.Type, identifier publication.SortableIdentifier) string {
	return primarySortKey(entityType, identifier)
}

func byTypeAndIdentifierPartitionKey(entityType publication.Type, identifier publication.SortableIdentifier) string {
	return primarySortKey(entityType, identifier)
}

func byCristinIdentifierPartitionKey(cristinIdentifier string) string {
	return fmt.Sprintf("CristinIdentifier:%s", cristinIdentifier)
}

func identifierEntryKey(identifier publication.SortableIdentifier) string {
	return fmt.Sprintf("IdentifierEntry:%s", identifier.String())
}

func uniqueDoiRequestEntryKey(resourceIdentifier publication.SortableIdentifier) string {
	return fmt.Sprintf("UniqueDoiRequestEntry:%s", resourceIdentifier.String())
}
