package dynamodb

import (
	"context"

	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// ResourceRepository implements ports.ResourceRepository on the single
// table. It is the only component that knows how resources map to
// storage keys.
type ResourceRepository struct {
	store
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(client Client, cfg TableConfig, publisher ports.ChangePublisher, logger *zap.Logger) *ResourceRepository {
	return &ResourceRepository{store: store{client: client, cfg: cfg, publisher: publisher, logger: logger}}
}

// Create writes the resource and its identifier marker transactionally
func (r *ResourceRepository) Create(ctx context.Context, resource *publication.Resource) error {
	d, err := newDao(resource)
	if err != nil {
		return err
	}

	err = r.transactCreate(ctx, d, newIdentifierEntry(resource.Identifier()))
	if pkgerrors.IsConflict(err) {
		// expected on duplicate creation, caller retries with a fresh identifier
		r.logger.Debug("resource identifier already taken",
			zap.String("identifier", resource.Identifier().String()))
		return pkgerrors.NewConflictError("resource already exists").WithCause(err)
	}
	if err != nil {
		return err
	}

	r.logger.Info("created resource",
		zap.String("identifier", resource.Identifier().String()),
		zap.String("owner", resource.Owner()),
		zap.String("status", resource.StatusString()))

	r.publishChange(ctx, ports.EntityChange{After: resource})
	return nil
}

// GetByIdentifier retrieves a resource via the type+identifier index
func (r *ResourceRepository) GetByIdentifier(ctx context.Context, identifier publication.SortableIdentifier) (*publication.Resource, error) {
	d, err := r.getDao(ctx, publication.TypeResource, identifier)
	if err != nil {
		return nil, err
	}
	entity, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	resource, ok := entity.(*publication.Resource)
	if !ok {
		return nil, pkgerrors.NewIntegrityError("stored entity is not a resource")
	}
	return resource, nil
}

// Update writes the resource under optimistic concurrency: the stored
// row version must still equal expectedVersion. The resource is issued
// a fresh version before the write.
func (r *ResourceRepository) Update(ctx context.Context, resource *publication.Resource, expectedVersion publication.RowVersion) error {
	before, err := r.GetByIdentifier(ctx, resource.Identifier())
	if err != nil {
		return err
	}

	resource.RefreshVersion()
	d, err := newDao(resource)
	if err != nil {
		return err
	}

	err = r.conditionalPut(ctx, d, expectedVersion)
	if pkgerrors.IsConflict(err) {
		return pkgerrors.NewConflictError("resource was modified concurrently").WithCause(err)
	}
	if err != nil {
		return err
	}

	r.publishChange(ctx, ports.EntityChange{Before: before, After: resource})
	return nil
}

// ListByCustomerAndStatus pages through the type+customer+status index
func (r *ResourceRepository) ListByCustomerAndStatus(ctx context.Context, customer publication.CustomerID, status publication.ResourceStatus, pageSize int, cursor string) (*ports.ResourcePage, error) {
	pk := byTypeCustomerStatusPartitionKey(publication.TypeResource, customer, string(status))
	daos, next, err := r.queryPage(ctx, r.cfg.ByTypeCustomerStatusIndex, keyAttrPK1, pk, "", pageSize, cursor)
	if err != nil {
		return nil, err
	}

	page := &ports.ResourcePage{NextCursor: next}
	for _, d := range daos {
		entity, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		resource, ok := entity.(*publication.Resource)
		if !ok {
			return nil, pkgerrors.NewIntegrityError("stored entity is not a resource")
		}
		page.Items = append(page.Items, resource)
	}
	return page, nil
}

// Delete physically removes a deletable draft together with its
// identifier marker. Published resources with an assigned DOI can
// never be deleted.
func (r *ResourceRepository) Delete(ctx context.Context, identifier publication.SortableIdentifier, actingOwner string) error {
	resource, err := r.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	if resource.Owner() != actingOwner {
		return pkgerrors.NewBadRequestError("resource can only be deleted by its owner")
	}
	if !resource.IsDeletable() {
		if resource.DOI() != "" {
			return pkgerrors.NewBadRequestError("resource with an assigned DOI cannot be deleted")
		}
		return pkgerrors.NewBadRequestError("resource is not marked for deletion")
	}

	d, err := newDao(resource)
	if err != nil {
		return err
	}

	if err := r.transactDelete(ctx, d, newIdentifierEntry(identifier)); err != nil {
		return err
	}

	r.logger.Info("deleted resource",
		zap.String("identifier", identifier.String()),
		zap.String("owner", actingOwner))

	r.publishChange(ctx, ports.EntityChange{Before: resource})
	return nil
}
