package dynamodb

import (
	"fmt"
	"time"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// dao is the storage envelope binding a domain entity to its derived
// keys and row version. The repositories exclusively own the mapping
// in both directions; domain entities never carry storage keys.
type dao struct {
	PK0        string     `dynamodbav:"PK0"`
	SK0        string     `dynamodbav:"SK0"`
	PK1        string     `dynamodbav:"PK1"`
	SK1        string     `dynamodbav:"SK1"`
	PK2        string     `dynamodbav:"PK2"`
	SK2        string     `dynamodbav:"SK2"`
	PK3        string     `dynamodbav:"PK3"`
	SK3        string     `dynamodbav:"SK3"`
	PK4        string     `dynamodbav:"PK4,omitempty"`
	SK4        string     `dynamodbav:"SK4,omitempty"`
	EntityType string     `dynamodbav:"EntityType"`
	Data       entityData `dynamodbav:"data"`
}

// entityData is the payload stored under the fixed "data" field. One
// flat struct covers all entity kinds; kind-specific fields are
// omitted when empty.
type entityData struct {
	Type        string `dynamodbav:"type"`
	Identifier  string `dynamodbav:"identifier"`
	Owner       string `dynamodbav:"owner"`
	CustomerURI string `dynamodbav:"customerId"`
	Status      string `dynamodbav:"status"`
	RowVersion  string `dynamodbav:"rowVersion"`
	CreatedAt   string `dynamodbav:"createdDate"`
	ModifiedAt  string `dynamodbav:"modifiedDate"`

	// Resource fields
	Title             string                 `dynamodbav:"mainTitle,omitempty"`
	DOI               string                 `dynamodbav:"doi,omitempty"`
	CristinIdentifier string                 `dynamodbav:"cristinIdentifier,omitempty"`
	Metadata          map[string]interface{} `dynamodbav:"entityDescription,omitempty"`

	// Ticket fields
	TicketType         string `dynamodbav:"ticketType,omitempty"`
	ResourceIdentifier string `dynamodbav:"resourceIdentifier,omitempty"`
	ViewedByOwner      bool   `dynamodbav:"viewedByOwner,omitempty"`

	// Message fields
	MessageKind string `dynamodbav:"messageKind,omitempty"`
	Text        string `dynamodbav:"text,omitempty"`
}

const timestampFormat = time.RFC3339Nano

// dataAttrRowVersion is the document path of the stored version token,
// used in conditional update expressions.
const dataAttrRowVersion = "data.rowVersion"

// newDao computes all key fields from the entity's attributes and
// wraps its payload. Identifier, owner, customer and status must be
// set, otherwise a ValidationError is returned.
func newDao(entity publication.Entity) (*dao, error) {
	if entity.Identifier().IsZero() {
		return nil, pkgerrors.NewValidationError("entity has no identifier")
	}
	if entity.Owner() == "" {
		return nil, pkgerrors.NewValidationError("entity has no owner")
	}
	if entity.Customer().IsZero() {
		return nil, pkgerrors.NewValidationError("entity has no customer")
	}
	if entity.StatusString() == "" {
		return nil, pkgerrors.NewValidationError("entity has no status")
	}
	if entity.Version().IsZero() {
		return nil, pkgerrors.NewValidationError("entity has no row version")
	}

	entityType := entity.EntityType()
	d := &dao{
		PK0:        primaryPartitionKey(entityType, entity.Customer(), entity.Owner()),
		SK0:        primarySortKey(entityType, entity.Identifier()),
		PK1:        byTypeCustomerStatusPartitionKey(entityType, entity.Customer(), entity.StatusString()),
		SK1:        byTypeCustomerStatusSortKey(entityType, entity.Identifier()),
		PK3:        byTypeAndIdentifierPartitionKey(entityType, entity.Identifier()),
		SK3:        byTypeAndIdentifierPartitionKey(entityType, entity.Identifier()),
		EntityType: string(entityType),
		Data: entityData{
			Type:        string(entityType),
			Identifier:  entity.Identifier().String(),
			Owner:       entity.Owner(),
			CustomerURI: entity.Customer().String(),
			Status:      entity.StatusString(),
			RowVersion:  entity.Version().String(),
			CreatedAt:   entity.CreatedAt().UTC().Format(timestampFormat),
			ModifiedAt:  entity.ModifiedAt().UTC().Format(timestampFormat),
		},
	}

	switch e := entity.(type) {
	case *publication.Resource:
		d.PK2 = byCustomerResourcePartitionKey(e.Customer(), e.Identifier())
		d.SK2 = byCustomerResourceSortKey(entityType, e.Identifier())
		d.Data.Title = e.Title()
		d.Data.DOI = e.DOI()
		d.Data.CristinIdentifier = e.CristinIdentifier()
		d.Data.Metadata = e.Metadata()
		if e.CristinIdentifier() != "" {
			d.PK4 = byCristinIdentifierPartitionKey(e.CristinIdentifier())
			d.SK4 = d.PK4
		}
	case *publication.Ticket:
		d.PK2 = byCustomerResourcePartitionKey(e.Customer(), e.ResourceIdentifier())
		d.SK2 = byCustomerResourceSortKey(entityType, e.Identifier())
		d.Data.TicketType = string(e.TicketType())
		d.Data.ResourceIdentifier = e.ResourceIdentifier().String()
		d.Data.ViewedByOwner = e.ViewedByOwner()
	case *publication.Message:
		d.PK2 = byCustomerResourcePartitionKey(e.Customer(), e.ResourceIdentifier())
		d.SK2 = byCustomerResourceSortKey(entityType, e.Identifier())
		d.Data.MessageKind = string(e.Kind())
		d.Data.ResourceIdentifier = e.ResourceIdentifier().String()
		d.Data.Text = e.Text()
	default:
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unsupported entity type %T", entity))
	}

	return d, nil
}

// toEntity reconstructs the wrapped domain entity. The result equals
// the originally wrapped entity under business equality; only the row
// version may differ after an update.
func (d *dao) toEntity() (publication.Entity, error) {
	identifier, err := publication.ParseSortableIdentifier(d.Data.Identifier)
	if err != nil {
		return nil, pkgerrors.NewIntegrityError("stored entity has a malformed identifier").WithCause(err)
	}
	customer, err := publication.NewCustomerID(d.Data.CustomerURI)
	if err != nil {
		return nil, pkgerrors.NewIntegrityError("stored entity has a malformed customer URI").WithCause(err)
	}
	version, err := publication.ParseRowVersion(d.Data.RowVersion)
	if err != nil {
		return nil, pkgerrors.NewIntegrityError("stored entity has no row version").WithCause(err)
	}
	createdAt, err := time.Parse(timestampFormat, d.Data.CreatedAt)
	if err != nil {
		return nil, pkgerrors.NewIntegrityError("stored entity has a malformed created timestamp").WithCause(err)
	}
	modifiedAt, err := time.Parse(timestampFormat, d.Data.ModifiedAt)
	if err != nil {
		return nil, pkgerrors.NewIntegrityError("stored entity has a malformed modified timestamp").WithCause(err)
	}

	switch publication.Type(d.Data.Type) {
	case publication.TypeResource:
		return publication.ReconstructResource(
			identifier,
			d.Data.Owner,
			customer,
			publication.ResourceStatus(d.Data.Status),
			d.Data.Title,
			d.Data.DOI,
			d.Data.CristinIdentifier,
			d.Data.Metadata,
			createdAt,
			modifiedAt,
			version,
		)
	case publication.TypeTicket:
		resourceIdentifier, err := publication.ParseSortableIdentifier(d.Data.ResourceIdentifier)
		if err != nil {
			return nil, pkgerrors.NewIntegrityError("stored ticket has a malformed resource reference").WithCause(err)
		}
		return publication.ReconstructTicket(
			identifier,
			publication.TicketType(d.Data.TicketType),
			resourceIdentifier,
			d.Data.Owner,
			customer,
			publication.TicketStatus(d.Data.Status),
			d.Data.ViewedByOwner,
			createdAt,
			modifiedAt,
			version,
		)
	case publication.TypeMessage:
		resourceIdentifier, err := publication.ParseSortableIdentifier(d.Data.ResourceIdentifier)
		if err != nil {
			return nil, pkgerrors.NewIntegrityError("stored message has a malformed resource reference").WithCause(err)
		}
		return publication.ReconstructMessage(
			identifier,
			d.Data.Owner,
			resourceIdentifier,
			customer,
			publication.MessageKind(d.Data.MessageKind),
			publication.MessageStatus(d.Data.Status),
			d.Data.Text,
			createdAt,
			modifiedAt,
			version,
		)
	default:
		return nil, pkgerrors.NewIntegrityError(fmt.Sprintf("stored entity has unknown type %q", d.Data.Type))
	}
}
