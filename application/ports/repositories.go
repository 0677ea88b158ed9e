package ports

import (
	"context"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// ResourcePage is one page of a paginated resource listing. NextCursor
// is an opaque continuation token; empty means the listing is
// exhausted.
type ResourcePage struct {
	Items      []*publication.Resource
	NextCursor string
}

// TicketPage is one page of a paginated ticket listing
type TicketPage struct {
	Items      []*publication.Ticket
	NextCursor string
}

// ResourceRepository defines the interface for publication persistence.
// This is a port in hexagonal architecture - the domain doesn't know
// about the implementation.
type ResourceRepository interface {
	// Create writes a new resource and its identifier marker in one
	// transaction; fails with ConflictError on a duplicate identifier
	Create(ctx context.Context, resource *publication.Resource) error

	// GetByIdentifier retrieves a resource by identifier
	GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Resource, error)

	// Update writes the resource if the stored row version still equals
	// expectedVersion; fails with ConflictError on a stale version
	Update(ctx context.Context, resource *publication.Resource, expectedVersion publication.RowVersion) error

	// ListByCustomerAndStatus pages through a customer's resources in a
	// given status, in insertion order
	ListByCustomerAndStatus(ctx context.Context, customer publication.CustomerID, status publication.ResourceStatus, pageSize int, cursor string) (*ResourcePage, error)

	// Delete physically removes a deletable resource owned by
	// actingOwner, together with its markers, in one transaction
	Delete(ctx context.Context, identifier publication.SortableIdentifier, actingOwner string) error
}

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// Create writes a new ticket; for DoiRequest tickets it also
	// reserves the one-per-resource marker in the same transaction
	Create(ctx context.Context, ticket *publication.Ticket) error

	// GetByIdentifier retrieves a ticket by identifier
	GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Ticket, error)

	// Update writes the ticket if the stored row version still equals
	// expectedVersion
	Update(ctx context.Context, ticket *publication.Ticket, expectedVersion publication.RowVersion) error

	// ListByCustomerAndStatus pages through a customer's tickets in a
	// given status
	ListByCustomerAndStatus(ctx context.Context, customer publication.CustomerID, status publication.TicketStatus, pageSize int, cursor string) (*TicketPage, error)

	// ListByResource returns all tickets attached to a resource
	ListByResource(ctx context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Ticket, error)

	// Delete physically removes a ticket owned by actingOwner and
	// releases its uniqueness marker in one transaction
	Delete(ctx context.Context, identifier publication.SortableIdentifier, actingOwner string) error
}

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	// Create writes a new message
	Create(ctx context.Context, message *publication.Message) error

	// GetByIdentifier retrieves a message by identifier
	GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Message, error)

	// Update writes the message if the stored row version still equals
	// expectedVersion
	Update(ctx context.Context, message *publication.Message, expectedVersion publication.RowVersion) error

	// ListByResource returns all messages attached to a resource
	ListByResource(ctx context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Message, error)
}
