package eventbridge

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// attribute names on the stream images
const (
	streamAttrEntityType = "EntityType"
	streamAttrData       = "data"
)

// StreamFanout turns DynamoDB stream records into entity change events
// on the bus. It is the read side of the registry's change feed: the
// repositories publish on the write path, the fanout replays whatever
// reaches the table, including writes from migrations and backfills.
type StreamFanout struct {
	publisher *Publisher
	logger    *zap.Logger
}

// NewStreamFanout creates a new fanout handler
func NewStreamFanout(publisher *Publisher, logger *zap.Logger) *StreamFanout {
	return &StreamFanout{publisher: publisher, logger: logger}
}

// HandleEvent converts and forwards one stream batch. Marker rows
// carry no payload and are skipped.
func (f *StreamFanout) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(event.Records))

	for _, record := range event.Records {
		entry, ok, err := f.convertRecord(record)
		if err != nil {
			return err
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return nil
	}

	f.logger.Info("forwarding stream records",
		zap.Int("records", len(event.Records)),
		zap.Int("entries", len(entries)))

	return f.publisher.PublishEntries(ctx, entries)
}

func (f *StreamFanout) convertRecord(record events.DynamoDBEventRecord) (types.PutEventsRequestEntry, bool, error) {
	image := record.Change.NewImage
	if len(image) == 0 {
		image = record.Change.OldImage
	}

	typeAttr, ok := image[streamAttrEntityType]
	if !ok || typeAttr.DataType() != events.DataTypeString {
		return types.PutEventsRequestEntry{}, false, nil
	}
	entityType := typeAttr.String()
	if !isEntityRow(entityType) {
		return types.PutEventsRequestEntry{}, false, nil
	}

	detail := changeDetail{
		EntityType: entityType,
		Action:     streamAction(record.EventName),
		Before:     imagePayload(record.Change.OldImage),
		After:      imagePayload(record.Change.NewImage),
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return types.PutEventsRequestEntry{}, false, err
	}

	return types.PutEventsRequestEntry{
		EventBusName: aws.String(f.publisher.busName),
		Source:       aws.String(f.publisher.source),
		DetailType:   aws.String(DetailType),
		Detail:       aws.String(string(payload)),
	}, true, nil
}

func isEntityRow(entityType string) bool {
	switch publication.Type(entityType) {
	case publication.TypeResource, publication.TypeTicket, publication.TypeMessage:
		return true
	default:
		return false
	}
}

func streamAction(eventName string) string {
	switch eventName {
	case "INSERT":
		return "CREATED"
	case "REMOVE":
		return "DELETED"
	default:
		return "UPDATED"
	}
}

// imagePayload lifts the data attribute of a stream image into a
// generic entity image for the change event
func imagePayload(image map[string]events.DynamoDBAttributeValue) *entityImage {
	data, ok := image[streamAttrData]
	if !ok || data.DataType() != events.DataTypeMap {
		return nil
	}

	raw, err := json.Marshal(attributeToValue(data))
	if err != nil {
		return nil
	}
	var payload entityImage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return &payload
}

// attributeToValue converts a stream attribute into plain Go values
func attributeToValue(attr events.DynamoDBAttributeValue) interface{} {
	switch attr.DataType() {
	case events.DataTypeString:
		return attr.String()
	case events.DataTypeNumber:
		if n, err := strconv.ParseFloat(attr.Number(), 64); err == nil {
			return n
		}
		return attr.Number()
	case events.DataTypeBoolean:
		return attr.Boolean()
	case events.DataTypeMap:
		out := make(map[string]interface{}, len(attr.Map()))
		for key, value := range attr.Map() {
			out[key] = attributeToValue(value)
		}
		return out
	case events.DataTypeList:
		out := make([]interface{}, 0, len(attr.List()))
		for _, value := range attr.List() {
			out = append(out, attributeToValue(value))
		}
		return out
	case events.DataTypeStringSet:
		out := make([]interface{}, 0, len(attr.StringSet()))
		for _, value := range attr.StringSet() {
			out = append(out, value)
		}
		return out
	default:
		return nil
	}
}
