package publication

import (
	"time"

	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// TicketType discriminates the workflow request kinds
type TicketType string

const (
	TicketTypeDoiRequest        TicketType = "DoiRequest"
	TicketTypePublishingRequest TicketType = "PublishingRequest"
)

// TicketStatus represents the workflow state of a ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "PENDING"
	TicketStatusCompleted TicketStatus = "COMPLETED"
	TicketStatusClosed    TicketStatus = "CLOSED"
)

// Ticket is a workflow request attached to exactly one resource. At
// most one DoiRequest may exist per resource; the repository enforces
// this with a uniqueness marker written in the same transaction.
type Ticket struct {
	identifier         SortableIdentifier
	ticketType         TicketType
	resourceIdentifier SortableIdentifier
	owner              string
	customer           CustomerID
	status             TicketStatus
	viewedByOwner      bool
	createdAt          time.Time
	modifiedAt         time.Time
	version            RowVersion
}

// NewTicket creates a pending ticket for the given resource
func NewTicket(ticketType TicketType, resourceIdentifier SortableIdentifier, owner string, customer CustomerID) (*Ticket, error) {
	switch ticketType {
	case TicketTypeDoiRequest, TicketTypePublishingRequest:
	default:
		return nil, pkgerrors.NewValidationError("unknown ticket type")
	}
	if resourceIdentifier.IsZero() {
		return nil, pkgerrors.NewValidationError("resource identifier cannot be empty")
	}
	if owner == "" {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}

	now := time.Now().UTC()
	return &Ticket{
		identifier:         NewSortableIdentifier(),
		ticketType:         ticketType,
		resourceIdentifier: resourceIdentifier,
		owner:              owner,
		customer:           customer,
		status:             TicketStatusPending,
		createdAt:          now,
		modifiedAt:         now,
		version:            NewRowVersion(),
	}, nil
}

// ReconstructTicket rebuilds a ticket from stored data
func ReconstructTicket(
	identifier SortableIdentifier,
	ticketType TicketType,
	resourceIdentifier SortableIdentifier,
	owner string,
	customer CustomerID,
	status TicketStatus,
	viewedByOwner bool,
	createdAt, modifiedAt time.Time,
	version RowVersion,
) (*Ticket, error) {
	if identifier.IsZero() {
		return nil, pkgerrors.NewValidationError("identifier cannot be empty")
	}
	if resourceIdentifier.IsZero() {
		return nil, pkgerrors.NewValidationError("resource identifier cannot be empty")
	}
	if owner == "" {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}

	return &Ticket{
		identifier:         identifier,
		ticketType:         ticketType,
		resourceIdentifier: resourceIdentifier,
		owner:              owner,
		customer:           customer,
		status:             status,
		viewedByOwner:      viewedByOwner,
		createdAt:          createdAt,
		modifiedAt:         modifiedAt,
		version:            version,
	}, nil
}

func (t *Ticket) EntityType() Type                         { return TypeTicket }
func (t *Ticket) Identifier() SortableIdentifier           { return t.identifier }
func (t *Ticket) TicketType() TicketType                   { return t.ticketType }
func (t *Ticket) ResourceIdentifier() SortableIdentifier   { return t.resourceIdentifier }
func (t *Ticket) Owner() string                            { return t.owner }
func (t *Ticket) Customer() CustomerID                     { return t.customer }
func (t *Ticket) Status() TicketStatus                     { return t.status }
func (t *Ticket) StatusString() string                     { return string(t.status) }
func (t *Ticket) ViewedByOwner() bool                      { return t.viewedByOwner }
func (t *Ticket) Version() RowVersion                      { return t.version }
func (t *Ticket) CreatedAt() time.Time                     { return t.createdAt }
func (t *Ticket) ModifiedAt() time.Time                    { return t.modifiedAt }

func (t *Ticket) sealed() {}

// RefreshVersion issues a new row version token and returns it
func (t *Ticket) RefreshVersion() RowVersion {
	t.version = NewRowVersion()
	return t.version
}

// Complete moves a pending ticket to COMPLETED
func (t *Ticket) Complete() error {
	switch t.status {
	case TicketStatusCompleted:
		return nil
	case TicketStatusPending:
		t.status = TicketStatusCompleted
		t.touch()
		return nil
	default:
		return pkgerrors.NewBadRequestError("only pending tickets can be completed")
	}
}

// Close moves a pending ticket to CLOSED
func (t *Ticket) Close() error {
	switch t.status {
	case TicketStatusClosed:
		return nil
	case TicketStatusPending:
		t.status = TicketStatusClosed
		t.touch()
		return nil
	default:
		return pkgerrors.NewBadRequestError("only pending tickets can be closed")
	}
}

// MarkViewedByOwner flags the ticket as seen by the resource owner
func (t *Ticket) MarkViewedByOwner() {
	if t.viewedByOwner {
		return
	}
	t.viewedByOwner = true
	t.touch()
}

// Equals compares two tickets under business equality, ignoring row
// version.
func (t *Ticket) Equals(other *Ticket) bool {
	if other == nil {
		return false
	}
	return t.identifier.Equals(other.identifier) &&
		t.ticketType == other.ticketType &&
		t.resourceIdentifier.Equals(other.resourceIdentifier) &&
		t.owner == other.owner &&
		t.customer.Equals(other.customer) &&
		t.status == other.status &&
		t.viewedByOwner == other.viewedByOwner &&
		t.createdAt.Equal(other.createdAt) &&
		t.modifiedAt.Equal(other.modifiedAt)
}

func (t *Ticket) touch() {
	t.modifiedAt = time.Now().UTC()
}
