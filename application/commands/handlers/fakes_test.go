package handlers

import (
	"context"
	"sync"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// map-backed repository fakes with the same conflict and not-found
// semantics as the persistence layer

type fakeResourceRepo struct {
	mu    sync.Mutex
	items map[string]*publication.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{items: make(map[string]*publication.Resource)}
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *publication.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := resource.Identifier().String()
	if _, exists := r.items[key]; exists {
		return pkgerrors.NewConflictError("resource already exists")
	}
	r.items[key] = resource
	return nil
}

func (r *fakeResourceRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, exists := r.items[identifier.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("resource")
	}
	return resource, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, resource *publication.Resource, expectedVersion publication.RowVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := resource.Identifier().String()
	stored, exists := r.items[key]
	if !exists {
		return pkgerrors.NewNotFoundError("resource")
	}
	if !stored.Version().Equals(expectedVersion) {
		return pkgerrors.NewConflictError("resource was modified concurrently")
	}
	resource.RefreshVersion()
	r.items[key] = resource
	return nil
}

func (r *fakeResourceRepo) ListByCustomerAndStatus(_ context.Context, customer publication.CustomerID, status publication.ResourceStatus, _ int, _ string) (*ports.ResourcePage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &ports.ResourcePage{}
	for _, resource := range r.items {
		if resource.Customer().Equals(customer) && resource.Status() == status {
			page.Items = append(page.Items, resource)
		}
	}
	return page, nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, identifier publication.SortableIdentifier, actingOwner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := identifier.String()
	stored, exists := r.items[key]
	if !exists {
		return pkgerrors.NewNotFoundError("resource")
	}
	if stored.Owner() != actingOwner {
		return pkgerrors.NewBadRequestError("resource is not owned by the acting user")
	}
	if !stored.IsDeletable() {
		return pkgerrors.NewBadRequestError("resource is not marked for deletion")
	}
	delete(r.items, key)
	return nil
}

type fakeTicketRepo struct {
	mu    sync.Mutex
	items map[string]*publication.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{items: make(map[string]*publication.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *publication.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ticket.Identifier().String()
	if _, exists := r.items[key]; exists {
		return pkgerrors.NewConflictError("a request of this kind already exists")
	}
	r.items[key] = ticket
	return nil
}

func (r *fakeTicketRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, exists := r.items[identifier.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("ticket")
	}
	return ticket, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *publication.Ticket, expectedVersion publication.RowVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ticket.Identifier().String()
	stored, exists := r.items[key]
	if !exists {
		return pkgerrors.NewNotFoundError("ticket")
	}
	if !stored.Version().Equals(expectedVersion) {
		return pkgerrors.NewConflictError("ticket was modified concurrently")
	}
	ticket.RefreshVersion()
	r.items[key] = ticket
	return nil
}

func (r *fakeTicketRepo) ListByCustomerAndStatus(_ context.Context, customer publication.CustomerID, status publication.TicketStatus, _ int, _ string) (*ports.TicketPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &ports.TicketPage{}
	for _, ticket := range r.items {
		if ticket.Customer().Equals(customer) && ticket.Status() == status {
			page.Items = append(page.Items, ticket)
		}
	}
	return page, nil
}

func (r *fakeTicketRepo) ListByResource(_ context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*publication.Ticket
	for _, ticket := range r.items {
		if ticket.Customer().Equals(customer) && ticket.ResourceIdentifier().Equals(resourceIdentifier) {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, identifier publication.SortableIdentifier, actingOwner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := identifier.String()
	stored, exists := r.items[key]
	if !exists {
		return pkgerrors.NewNotFoundError("ticket")
	}
	if stored.Owner() != actingOwner {
		return pkgerrors.NewBadRequestError("ticket is not owned by the acting user")
	}
	delete(r.items, key)
	return nil
}

type fakeMessageRepo struct {
	mu    sync.Mutex
	items map[string]*publication.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{items: make(map[string]*publication.Message)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *publication.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := message.Identifier().String()
	if _, exists := r.items[key]; exists {
		return pkgerrors.NewConflictError("message already exists")
	}
	r.items[key] = message
	return nil
}

func (r *fakeMessageRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, exists := r.items[identifier.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("message")
	}
	return message, nil
}

func (r *fakeMessageRepo) Update(_ context.Context, message *publication.Message, expectedVersion publication.RowVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := message.Identifier().String()
	stored, exists := r.items[key]
	if !exists {
		return pkgerrors.NewNotFoundError("message")
	}
	if !stored.Version().Equals(expectedVersion) {
		return pkgerrors.NewConflictError("message was modified concurrently")
	}
	message.RefreshVersion()
	r.items[key] = message
	return nil
}

func (r *fakeMessageRepo) ListByResource(_ context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*publication.Message
	for _, message := range r.items {
		if message.Customer().Equals(customer) && message.ResourceIdentifier().Equals(resourceIdentifier) {
			out = append(out, message)
		}
	}
	return out, nil
}
