package dynamodb

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// TicketRepository implements ports.TicketRepository on the single
// table. DoiRequest tickets are guarded by a one-per-resource
// uniqueness marker written in the same transaction.
type TicketRepository struct {
	store
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(client Client, cfg TableConfig, publisher ports.ChangePublisher, logger *zap.Logger) *TicketRepository {
	return &TicketRepository{store: store{client: client, cfg: cfg, publisher: publisher, logger: logger}}
}

// Create writes the ticket after verifying its resource reference
// resolves. A second DoiRequest for the same resource fails with
// ConflictError, which is an expected outcome and logged at debug.
func (t *TicketRepository) Create(ctx context.Context, ticket *publication.Ticket) error {
	if _, err := t.getDao(ctx, publication.TypeResource, ticket.ResourceIdentifier()); err != nil {
		return err
	}

	d, err := newDao(ticket)
	if err != nil {
		return err
	}

	markers := []uniquenessEntry{newIdentifierEntry(ticket.Identifier())}
	if ticket.TicketType() == publication.TicketTypeDoiRequest {
		markers = append(markers, newUniqueDoiRequestEntry(ticket.ResourceIdentifier()))
	}

	err = t.transactCreate(ctx, d, markers...)
	if pkgerrors.IsConflict(err) {
		t.logger.Debug("ticket creation conflicted",
			zap.String("ticketType", string(ticket.TicketType())),
			zap.String("resource", ticket.ResourceIdentifier().String()))
		return pkgerrors.NewConflictError("a request of this kind already exists").WithCause(err)
	}
	if err != nil {
		return err
	}

	t.logger.Info("created ticket",
		zap.String("identifier", ticket.Identifier().String()),
		zap.String("ticketType", string(ticket.TicketType())),
		zap.String("resource", ticket.ResourceIdentifier().String()))

	t.publishChange(ctx, ports.EntityChange{After: ticket})
	return nil
}

// GetByIdentifier retrieves a ticket via the type+identifier index
func (t *TicketRepository) GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Ticket, error) {
	d, err := t.getDao(ctx, publication.TypeTicket, identifier)
	if err != nil {
		return nil, err
	}
	entity, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	ticket, ok := entity.(*publication.Ticket)
	if !ok {
		return nil, pkgerrors.NewIntegrityError("stored entity is not a ticket")
	}
	return ticket, nil
}

// Update writes the ticket under optimistic concurrency
func (t *TicketRepository) Update(ctx context.Context, ticket *publication.Ticket, expectedVersion publication.RowVersion) error {
	before, err := t.GetByIdentifier(ctx, ticket.Identifier())
	if err != nil {
		return err
	}

	ticket.RefreshVersion()
	d, err := newDao(ticket)
	if err != nil {
		return err
	}

	err = t.conditionalPut(ctx, d, expectedVersion)
	if pkgerrors.IsConflict(err) {
		return pkgerrors.NewConflictError("ticket was modified concurrently").WithCause(err)
	}
	if err != nil {
		return err
	}

	t.publishChange(ctx, ports.EntityChange{Before: before, After: ticket})
	return nil
}

// ListByCustomerAndStatus pages through the type+customer+status index
func (t *TicketRepository) ListByCustomerAndStatus(ctx context.Context, customer publication.CustomerID, status publication.TicketStatus, pageSize int, cursor string) (*ports.TicketPage, error) {
	pk := byTypeCustomerStatusPartitionKey(publication.TypeTicket, customer, string(status))
	daos, next, err := t.queryPage(ctx, t.cfg.ByTypeCustomerStatusIndex, keyAttrPK1, pk, "", pageSize, cursor)
	if err != nil {
		return nil, err
	}

	page := &ports.TicketPage{NextCursor: next}
	for _, d := range daos {
		ticket, err := ticketFromDao(d)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, ticket)
	}
	return page, nil
}

// ListByResource returns all tickets attached to a resource via the
// customer+resource index
func (t *TicketRepository) ListByResource(ctx context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Ticket, error) {
	pk := byCustomerResourcePartitionKey(customer, resourceIdentifier)
	daos, err := t.queryAll(ctx, t.cfg.ByCustomerResourceIndex, keyAttrPK2, pk, publication.TypeTicket)
	if err != nil {
		return nil, err
	}

	tickets := make([]*publication.Ticket, 0, len(daos))
	for _, d := range daos {
		ticket, err := ticketFromDao(d)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Delete physically removes a ticket owned by actingOwner and releases
// its uniqueness markers in the same transaction
func (t *TicketRepository) Delete(ctx context.Context, identifier publication.SortableIdentifier, actingOwner string) error {
	ticket, err := t.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if ticket.Owner() != actingOwner {
		return pkgerrors.NewBadRequestError("ticket can only be deleted by its owner")
	}

	d, err := newDao(ticket)
	if err != nil {
		return err
	}

	markers := []uniquenessEntry{newIdentifierEntry(identifier)}
	if ticket.TicketType() == publication.TicketTypeDoiRequest {
		markers = append(markers, newUniqueDoiRequestEntry(ticket.ResourceIdentifier()))
	}

	if err := t.transactDelete(ctx, d, markers...); err != nil {
		return err
	}

	t.publishChange(ctx, ports.EntityChange{Before: ticket})
	return nil
}

func ticketFromDao(d *dao) (*publication.Ticket, error) {
	entity, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	ticket, ok := entity.(*publication.Ticket)
	if !ok {
		return nil, pkgerrors.NewIntegrityError("stored entity is not a ticket")
	}
	return ticket, nil
}
