package dynamodb

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// MessageRepository implements ports.MessageRepository on the single
// table.
type MessageRepository struct {
	store
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(client Client, cfg TableConfig, publisher ports.ChangePublisher, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{store: store{client: client, cfg: cfg, publisher: publisher, logger: logger}}
}

// Create writes the message after verifying its resource reference
// resolves
func (m *MessageRepository) Create(ctx context.Context, message *publication.Message) error {
	if _, err := m.getDao(ctx, publication.TypeResource, message.ResourceIdentifier()); err != nil {
		return err
	}

	d, err := newDao(message)
	if err != nil {
		return err
	}

	err = m.transactCreate(ctx, d, newIdentifierEntry(message.Identifier()))
	if pkgerrors.IsConflict(err) {
		return pkgerrors.NewConflictError("message already exists").WithCause(err)
	}
	if err != nil {
		return err
	}

	m.publishChange(ctx, ports.EntityChange{After: message})
	return nil
}

// GetByIdentifier retrieves a message via the type+identifier index
func (m *MessageRepository) GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Message, error) {
	d, err := m.getDao(ctx, publication.TypeMessage, identifier)
	if err != nil {
		return nil, err
	}
	return messageFromDao(d)
}

// Update writes the message under optimistic concurrency
func (m *MessageRepository) Update(ctx context.Context, message *publication.Message, expectedVersion publication.RowVersion) error {
	before, err := m.GetByIdentifier(ctx, message.Identifier())
	if err != nil {
		return err
	}

	message.RefreshVersion()
	d, err := newDao(message)
	if err != nil {
		return err
	}

	err = m.conditionalPut(ctx, d, expectedVersion)
	if pkgerrors.IsConflict(err) {
		return pkgerrors.NewConflictError("message was modified concurrently").WithCause(err)
	}
	if err != nil {
		return err
	}

	m.publishChange(ctx, ports.EntityChange{Before: before, After: message})
	return nil
}

// ListByResource returns all messages attached to a resource via the
// customer+resource index
func (m *MessageRepository) ListByResource(ctx context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Message, error) {
	pk := byCustomerResourcePartitionKey(customer, resourceIdentifier)
	daos, err := m.queryAll(ctx, m.cfg.ByCustomerResourceIndex, keyAttrPK2, pk, publication.TypeMessage)
	if err != nil {
		return nil, err
	}

	messages := make([]*publication.Message, 0, len(daos))
	for _, d := range daos {
		message, err := messageFromDao(d)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func messageFromDao(d *dao) (*publication.Message, error) {
	entity, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	message, ok := entity.(*publication.Message)
	if !ok {
		return nil, pkgerrors.NewIntegrityError("stored entity is not a message")
	}
	return message, nil
}
