package handlers

import (
	"context"
	"strconv"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// read-side fakes: ordered slices so listings are deterministic,
// cursors are decimal offsets into the filtered result

type fakeResourceRepo struct {
	resources []*publication.Resource
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *publication.Resource) error {
	r.resources = append(r.resources, resource)
	return nil
}

func (r *fakeResourceRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Resource, error) {
	for _, resource := range r.resources {
		if resource.Identifier().Equals(identifier) {
			return resource, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("resource")
}

func (r *fakeResourceRepo) Update(_ context.Context, _ *publication.Resource, _ publication.RowVersion) error {
	return nil
}

func (r *fakeResourceRepo) ListByCustomerAndStatus(_ context.Context, customer publication.CustomerID, status publication.ResourceStatus, pageSize int, cursor string) (*ports.ResourcePage, error) {
	var filtered []*publication.Resource
	for _, resource := range r.resources {
		if resource.Customer().Equals(customer) && resource.Status() == status {
			filtered = append(filtered, resource)
		}
	}

	start := 0
	if cursor != "" {
		offset, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, pkgerrors.NewValidationError("malformed cursor")
		}
		start = offset
	}

	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	page := &ports.ResourcePage{Items: filtered[start:end]}
	if end < len(filtered) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, _ publication.SortableIdentifier, _ string) error {
	return nil
}

type fakeTicketRepo struct {
	tickets []*publication.Ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *publication.Ticket) error {
	r.tickets = append(r.tickets, ticket)
	return nil
}

func (r *fakeTicketRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.Identifier().Equals(identifier) {
			return ticket, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("ticket")
}

func (r *fakeTicketRepo) Update(_ context.Context, _ *publication.Ticket, _ publication.RowVersion) error {
	return nil
}

func (r *fakeTicketRepo) ListByCustomerAndStatus(_ context.Context, customer publication.CustomerID, status publication.TicketStatus, pageSize int, cursor string) (*ports.TicketPage, error) {
	var filtered []*publication.Ticket
	for _, ticket := range r.tickets {
		if ticket.Customer().Equals(customer) && ticket.Status() == status {
			filtered = append(filtered, ticket)
		}
	}

	start := 0
	if cursor != "" {
		offset, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, pkgerrors.NewValidationError("malformed cursor")
		}
		start = offset
	}

	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	page := &ports.TicketPage{Items: filtered[start:end]}
	if end < len(filtered) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

func (r *fakeTicketRepo) ListByResource(_ context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Ticket, error) {
	var out []*publication.Ticket
	for _, ticket := range r.tickets {
		if ticket.Customer().Equals(customer) && ticket.ResourceIdentifier().Equals(resourceIdentifier) {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, _ publication.SortableIdentifier, _ string) error {
	return nil
}

type fakeMessageRepo struct {
	messages []*publication.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, message *publication.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) GetByIdentifier(_ context.Context, identifier publication.SortableIdentifier) (*publication.Message, error) {
	for _, message := range r.messages {
		if message.Identifier().Equals(identifier) {
			return message, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("message")
}

func (r *fakeMessageRepo) Update(_ context.Context, _ *publication.Message, _ publication.RowVersion) error {
	return nil
}

func (r *fakeMessageRepo) ListByResource(_ context.Context, customer publication.CustomerID, resourceIdentifier publication.SortableIdentifier) ([]*publication.Message, error) {
	var out []*publication.Message
	for _, message := range r.messages {
		if message.Customer().Equals(customer) && message.ResourceIdentifier().Equals(resourceIdentifier) {
			out = append(out, message)
		}
	}
	return out, nil
}
