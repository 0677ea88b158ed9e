package queries

import (
	"time"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// ResourceResult is the read model for a publication resource. It
// carries the row version so callers can echo it back as the expected
// version on a later write.
type ResourceResult struct {
	Identifier        string                 `json:"identifier"`
	Owner             string                 `json:"owner"`
	Customer          string                 `json:"customer"`
	Status            string                 `json:"status"`
	Title             string                 `json:"title"`
	DOI               string                 `json:"doi,omitempty"`
	CristinIdentifier string                 `json:"cristinIdentifier,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	RowVersion        string                 `json:"rowVersion"`
	CreatedAt         time.Time              `json:"createdAt"`
	ModifiedAt        time.Time              `json:"modifiedAt"`
}

// NewResourceResult builds a ResourceResult from a domain resource
func NewResourceResult(resource *publication.Resource) *ResourceResult {
	return &ResourceResult{
		Identifier:        resource.Identifier().String(),
		Owner:             resource.Owner(),
		Customer:          resource.Customer().String(),
		Status:            resource.StatusString(),
		Title:             resource.Title(),
		DOI:               resource.DOI(),
		CristinIdentifier: resource.CristinIdentifier(),
		Metadata:          resource.Metadata(),
		RowVersion:        resource.Version().String(),
		CreatedAt:         resource.CreatedAt(),
		ModifiedAt:        resource.ModifiedAt(),
	}
}

// ResourceListResult is one page of resources
type ResourceListResult struct {
	Items      []*ResourceResult `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

// TicketResult is the read model for a workflow ticket
type TicketResult struct {
	Identifier         string    `json:"identifier"`
	TicketType         string    `json:"ticketType"`
	ResourceIdentifier string    `json:"resourceIdentifier"`
	Owner              string    `json:"owner"`
	Customer           string    `json:"customer"`
	Status             string    `json:"status"`
	ViewedByOwner      bool      `json:"viewedByOwner"`
	RowVersion         string    `json:"rowVersion"`
	CreatedAt          time.Time `json:"createdAt"`
	ModifiedAt         time.Time `json:"modifiedAt"`
}

// NewTicketResult builds a TicketResult from a domain ticket
func NewTicketResult(ticket *publication.Ticket) *TicketResult {
	return &TicketResult{
		Identifier:         ticket.Identifier().String(),
		TicketType:         string(ticket.TicketType()),
		ResourceIdentifier: ticket.ResourceIdentifier().String(),
		Owner:              ticket.Owner(),
		Customer:           ticket.Customer().String(),
		Status:             ticket.StatusString(),
		ViewedByOwner:      ticket.ViewedByOwner(),
		RowVersion:         ticket.Version().String(),
		CreatedAt:          ticket.CreatedAt(),
		ModifiedAt:         ticket.ModifiedAt(),
	}
}

// TicketListResult is one page of tickets
type TicketListResult struct {
	Items      []*TicketResult `json:"items"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// MessageResult is the read model for a conversation message
type MessageResult struct {
	Identifier         string    `json:"identifier"`
	Sender             string    `json:"sender"`
	ResourceIdentifier string    `json:"resourceIdentifier"`
	Customer           string    `json:"customer"`
	Kind               string    `json:"kind"`
	Status             string    `json:"status"`
	Text               string    `json:"text"`
	RowVersion         string    `json:"rowVersion"`
	CreatedAt          time.Time `json:"createdAt"`
	ModifiedAt         time.Time `json:"modifiedAt"`
}

// NewMessageResult builds a MessageResult from a domain message
func NewMessageResult(message *publication.Message) *MessageResult {
	return &MessageResult{
		Identifier:         message.Identifier().String(),
		Sender:             message.Sender(),
		ResourceIdentifier: message.ResourceIdentifier().String(),
		Customer:           message.Customer().String(),
		Kind:               string(message.Kind()),
		Status:             message.StatusString(),
		Text:               message.Text(),
		RowVersion:         message.Version().String(),
		CreatedAt:          message.CreatedAt(),
		ModifiedAt:         message.ModifiedAt(),
	}
}

// MessageListResult is the full conversation attached to a resource
type MessageListResult struct {
	Items []*MessageResult `json:"items"`
}
