package dynamodb

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// uniquenessEntry is a sentinel record occupying a primary key slot so
// that a conditional put fails when a duplicate would be created. It
// carries no payload beyond its own key and is always written or
// removed in the same transaction as the entity it guards.
type uniquenessEntry struct {
	PK0        string `dynamodbav:"PK0"`
	SK0        string `dynamodbav:"SK0"`
	EntityType string `dynamodbav:"EntityType"`
}

func newIdentifierEntry(identifier publication.SortableIdentifier) uniquenessEntry {
	key := identifierEntryKey(identifier)
	return uniquenessEntry{PK0: key, SK0: key, EntityType: "IdentifierEntry"}
}

func newUniqueDoiRequestEntry(resourceIdentifier publication.SortableIdentifier) uniquenessEntry {
	key := uniqueDoiRequestEntryKey(resourceIdentifier)
	return uniquenessEntry{PK0: key, SK0: key, EntityType: "UniqueDoiRequestEntry"}
}

// reserveItem builds the transactional put-if-absent for this marker
func (u uniquenessEntry) reserveItem(tableName string) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK0)"),
		},
	}, nil
}

// releaseItem builds the transactional delete for this marker
func (u uniquenessEntry) releaseItem(tableName string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(tableName),
			Key: map[string]types.AttributeValue{
				keyAttrPK0: &types.AttributeValueMemberS{Value: u.PK0},
				keyAttrSK0: &types.AttributeValueMemberS{Value: u.SK0},
			},
		},
	}
}
