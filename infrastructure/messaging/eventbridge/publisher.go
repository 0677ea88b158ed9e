package eventbridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

const (
	// DetailType marks entity change events on the bus
	DetailType = "PublicationEntityChange"

	maxBatchSize = 10
)

// Client is the subset of the EventBridge API the publisher uses
type Client interface {
	PutEvents(ctx context.Context, params *awseventbridge.PutEventsInput, optFns ...func(*awseventbridge.Options)) (*awseventbridge.PutEventsOutput, error)
}

// Publisher forwards entity before/after images to an EventBridge bus
// for downstream fan-out (search-index projection, DOI workflow).
type Publisher struct {
	client  Client
	busName string
	source  string
	logger  *zap.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(client Client, busName, source string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, busName: busName, source: source, logger: logger}
}

// changeDetail is the JSON event payload. Absent images are explicit
// nulls so consumers can tell creation and deletion apart.
type changeDetail struct {
	EntityType string       `json:"entityType"`
	Action     string       `json:"action"`
	Before     *entityImage `json:"before"`
	After      *entityImage `json:"after"`
}

// entityImage carries enough of an entity to reconstruct it downstream
type entityImage struct {
	Type               string                 `json:"type"`
	Identifier         string                 `json:"identifier"`
	Owner              string                 `json:"owner"`
	CustomerID         string                 `json:"customerId"`
	Status             string                 `json:"status"`
	RowVersion         string                 `json:"rowVersion"`
	CreatedAt          time.Time              `json:"createdDate"`
	ModifiedAt         time.Time              `json:"modifiedDate"`
	Title              string                 `json:"mainTitle,omitempty"`
	DOI                string                 `json:"doi,omitempty"`
	CristinIdentifier  string                 `json:"cristinIdentifier,omitempty"`
	Metadata           map[string]interface{} `json:"entityDescription,omitempty"`
	TicketType         string                 `json:"ticketType,omitempty"`
	ResourceIdentifier string                 `json:"resourceIdentifier,omitempty"`
	ViewedByOwner      bool                   `json:"viewedByOwner,omitempty"`
	MessageKind        string                 `json:"messageKind,omitempty"`
	Text               string                 `json:"text,omitempty"`
}

func newEntityImage(entity publication.Entity) *entityImage {
	if entity == nil {
		return nil
	}

	image := &entityImage{
		Type:       string(entity.EntityType()),
		Identifier: entity.Identifier().String(),
		Owner:      entity.Owner(),
		CustomerID: entity.Customer().String(),
		Status:     entity.StatusString(),
		RowVersion: entity.Version().String(),
		CreatedAt:  entity.CreatedAt(),
		ModifiedAt: entity.ModifiedAt(),
	}

	switch e := entity.(type) {
	case *publication.Resource:
		image.Title = e.Title()
		image.DOI = e.DOI()
		image.CristinIdentifier = e.CristinIdentifier()
		image.Metadata = e.Metadata()
	case *publication.Ticket:
		image.TicketType = string(e.TicketType())
		image.ResourceIdentifier = e.ResourceIdentifier().String()
		image.ViewedByOwner = e.ViewedByOwner()
	case *publication.Message:
		image.MessageKind = string(e.Kind())
		image.ResourceIdentifier = e.ResourceIdentifier().String()
		image.Text = e.Text()
	}

	return image
}

func changeAction(change ports.EntityChange) string {
	switch {
	case change.Before == nil:
		return "CREATED"
	case change.After == nil:
		return "DELETED"
	default:
		return "UPDATED"
	}
}

// PublishChange sends one before/after image pair to the bus
func (p *Publisher) PublishChange(ctx context.Context, change ports.EntityChange) error {
	entityType := ""
	if change.After != nil {
		entityType = string(change.After.EntityType())
	} else if change.Before != nil {
		entityType = string(change.Before.EntityType())
	} else {
		return pkgerrors.NewValidationError("entity change has neither a before nor an after image")
	}

	detail := changeDetail{
		EntityType: entityType,
		Action:     changeAction(change),
		Before:     newEntityImage(change.Before),
		After:      newEntityImage(change.After),
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return pkgerrors.NewInternalError("marshalling entity change").WithCause(err)
	}

	return p.PublishEntries(ctx, []types.PutEventsRequestEntry{{
		EventBusName: aws.String(p.busName),
		Source:       aws.String(p.source),
		DetailType:   aws.String(DetailType),
		Detail:       aws.String(string(payload)),
	}})
}

// PublishEntries sends raw event entries in batches of at most ten,
// the PutEvents limit.
func (p *Publisher) PublishEntries(ctx context.Context, entries []types.PutEventsRequestEntry) error {
	for start := 0; start < len(entries); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		out, err := p.client.PutEvents(ctx, &awseventbridge.PutEventsInput{Entries: batch})
		if err != nil {
			return pkgerrors.NewTransientStoreError("PutEvents", err)
		}
		if out.FailedEntryCount > 0 {
			for _, entry := range out.Entries {
				if entry.ErrorCode != nil {
					p.logger.Warn("event entry rejected",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)))
				}
			}
			return pkgerrors.NewTransientStoreError("PutEvents", nil)
		}
	}
	return nil
}
