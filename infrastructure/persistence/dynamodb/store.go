package dynamodb

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	"github.com/axthosarouris/nva-publication-api-sub001/pkg/common"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// store holds the plumbing shared by the per-entity repositories: the
// narrow DynamoDB client, table/index names, the change publisher and
// the logger.
type store struct {
	client    Client
	cfg       TableConfig
	publisher ports.ChangePublisher
	logger    *zap.Logger
}

// getDao looks an entity up on the type+identifier index. Exactly one
// item must match: zero is NotFoundError, more than one means two
// logical entities resolved to the same key, which is fatal.
func (s *store) getDao(ctx context.Context, entityType publication.Type, identifier publication.SortableIdentifier) (*dao, error) {
	keyCond := expression.Key(keyAttrPK3).Equal(expression.Value(byTypeAndIdentifierPartitionKey(entityType, identifier)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("building identifier query").WithCause(err)
	}

	out, err := s.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(s.cfg.TableName),
		IndexName:                 aws.String(s.cfg.ByTypeAndIdentifierIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, translateStoreError("Query", err)
	}

	switch len(out.Items) {
	case 0:
		return nil, pkgerrors.NewNotFoundError(strings.ToLower(string(entityType)))
	case 1:
	default:
		return nil, pkgerrors.NewIntegrityError("multiple entities stored under one identifier key")
	}

	var d dao
	if err := attributevalue.UnmarshalMap(out.Items[0], &d); err != nil {
		return nil, pkgerrors.NewIntegrityError("stored item cannot be decoded").WithCause(err)
	}
	if d.Data.Type != string(entityType) || d.EntityType != d.Data.Type {
		return nil, pkgerrors.NewIntegrityError("stored entity type does not match its key")
	}
	return &d, nil
}

// transactCreate writes the dao and its uniqueness markers in one
// all-or-nothing group. Each put is conditional on its key slot being
// free, so duplicate creation surfaces as ConflictError.
func (s *store) transactCreate(ctx context.Context, d *dao, markers ...uniquenessEntry) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return pkgerrors.NewInternalError("marshalling entity").WithCause(err)
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(s.cfg.TableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK0)"),
		},
	}}
	for _, marker := range markers {
		write, err := marker.reserveItem(s.cfg.TableName)
		if err != nil {
			return pkgerrors.NewInternalError("marshalling uniqueness marker").WithCause(err)
		}
		writes = append(writes, write)
	}

	_, err = s.client.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{TransactItems: writes})
	return translateStoreError("TransactWriteItems", err)
}

// conditionalPut overwrites the dao only while the stored row version
// still equals expectedVersion. A stale version surfaces as
// ConflictError for the caller to re-read and retry.
func (s *store) conditionalPut(ctx context.Context, d *dao, expectedVersion publication.RowVersion) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return pkgerrors.NewInternalError("marshalling entity").WithCause(err)
	}

	cond := expression.Name(dataAttrRowVersion).Equal(expression.Value(expectedVersion.String()))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.NewInternalError("building version condition").WithCause(err)
	}

	_, err = s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return translateStoreError("PutItem", err)
}

// transactDelete removes the dao and its markers in one all-or-nothing
// group, conditional on the stored row version so a concurrent
// mutation cancels the delete.
func (s *store) transactDelete(ctx context.Context, d *dao, markers ...uniquenessEntry) error {
	cond := expression.Name(dataAttrRowVersion).Equal(expression.Value(d.Data.RowVersion))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.NewInternalError("building version condition").WithCause(err)
	}

	writes := []types.TransactWriteItem{{
		Delete: &types.Delete{
			TableName: aws.String(s.cfg.TableName),
			Key: map[string]types.AttributeValue{
				keyAttrPK0: &types.AttributeValueMemberS{Value: d.PK0},
				keyAttrSK0: &types.AttributeValueMemberS{Value: d.SK0},
			},
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		},
	}}
	for _, marker := range markers {
		writes = append(writes, marker.releaseItem(s.cfg.TableName))
	}

	_, err = s.client.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{TransactItems: writes})
	return translateStoreError("TransactWriteItems", err)
}

// queryPage runs one paginated query against an index and returns the
// decoded daos plus the continuation cursor.
func (s *store) queryPage(ctx context.Context, indexName, pkAttr, pkValue string, entityType publication.Type, pageSize int, cursor string) ([]*dao, string, error) {
	startKey, err := decodeStartKey(cursor)
	if err != nil {
		return nil, "", err
	}

	keyCond := expression.Key(pkAttr).Equal(expression.Value(pkValue))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if entityType != "" {
		builder = builder.WithFilter(expression.Name("EntityType").Equal(expression.Value(string(entityType))))
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, "", pkgerrors.NewInternalError("building index query").WithCause(err)
	}

	input := &awsdynamodb.QueryInput{
		TableName:                 aws.String(s.cfg.TableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	}
	if pageSize > 0 {
		input.Limit = aws.Int32(int32(pageSize))
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, "", translateStoreError("Query", err)
	}

	daos := make([]*dao, 0, len(out.Items))
	for _, item := range out.Items {
		var d dao
		if err := attributevalue.UnmarshalMap(item, &d); err != nil {
			return nil, "", pkgerrors.NewIntegrityError("stored item cannot be decoded").WithCause(err)
		}
		daos = append(daos, &d)
	}

	return daos, encodeNextCursor(out.LastEvaluatedKey), nil
}

// queryAll follows continuation cursors until the index partition is
// exhausted.
func (s *store) queryAll(ctx context.Context, indexName, pkAttr, pkValue string, entityType publication.Type) ([]*dao, error) {
	var all []*dao
	cursor := ""
	for {
		page, next, err := s.queryPage(ctx, indexName, pkAttr, pkValue, entityType, 0, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

// publishChange hands the before/after images to the fan-out channel.
// Publishing happens after the store write has committed, so failures
// are logged and never fail the mutation itself.
func (s *store) publishChange(ctx context.Context, change ports.EntityChange) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, change); err != nil {
		s.logger.Error("failed to publish entity change", zap.Error(err))
	}
}

func decodeStartKey(cursor string) (map[string]types.AttributeValue, error) {
	key, err := common.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, nil
	}
	startKey := make(map[string]types.AttributeValue, len(key))
	for attr, value := range key {
		startKey[attr] = &types.AttributeValueMemberS{Value: value}
	}
	return startKey, nil
}

func encodeNextCursor(lastEvaluatedKey map[string]types.AttributeValue) string {
	if len(lastEvaluatedKey) == 0 {
		return ""
	}
	key := make(map[string]string, len(lastEvaluatedKey))
	for attr, value := range lastEvaluatedKey {
		if s, ok := value.(*types.AttributeValueMemberS); ok {
			key[attr] = s.Value
		}
	}
	return common.EncodeCursor(key)
}
