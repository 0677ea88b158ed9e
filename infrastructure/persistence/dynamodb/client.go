package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Client is the subset of the DynamoDB API the repositories use.
// *dynamodb.Client satisfies it; tests substitute an in-memory fake
// implementing the same conditional-write semantics.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// TableConfig carries the table and index names. It is always passed
// explicitly into repository constructors, never read from ambient
// global state.
type TableConfig struct {
	TableName                 string
	ByTypeCustomerStatusIndex string
	ByCustomerResourceIndex   string
	ByTypeAndIdentifierIndex  string
	ByCristinIdentifierIndex  string
}
