package dynamodb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory stand-in for DynamoDB implementing the
// conditional-write, transaction and index-query semantics the
// repositories rely on. Conditions are evaluated against the stored
// item exactly like the real store: attribute_not_exists on the key
// slot and single-attribute equality on a document path.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	// when set, the next API call fails with this error once
	failNext error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeClient) takeInjectedError() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func itemKey(item map[string]types.AttributeValue) string {
	return stringAttr(item, keyAttrPK0) + "|" + stringAttr(item, keyAttrSK0)
}

func stringAttr(item map[string]types.AttributeValue, attr string) string {
	if v, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// substituteNames expands #n placeholders. Longer placeholders are
// replaced first so #1 never clobbers #10.
func substituteNames(expr string, names map[string]string) string {
	placeholders := make([]string, 0, len(names))
	for p := range names {
		placeholders = append(placeholders, p)
	}
	sort.Slice(placeholders, func(i, j int) bool { return len(placeholders[i]) > len(placeholders[j]) })
	for _, p := range placeholders {
		expr = strings.ReplaceAll(expr, p, names[p])
	}
	return expr
}

var (
	notExistsPattern = regexp.MustCompile(`^\s*attribute_not_exists\s*\(\s*([\w.]+)\s*\)\s*$`)
	equalityPattern  = regexp.MustCompile(`^\s*([\w.]+)\s*=\s*(:[\w]+)\s*$`)
)

func resolvePath(item map[string]types.AttributeValue, path string) (types.AttributeValue, bool) {
	segments := strings.Split(path, ".")
	current := item
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		nested, ok := value.(*types.AttributeValueMemberM)
		if !ok {
			return nil, false
		}
		current = nested.Value
	}
	return nil, false
}

func attributesEqual(a, b types.AttributeValue) bool {
	as, aok := a.(*types.AttributeValueMemberS)
	bs, bok := b.(*types.AttributeValueMemberS)
	if aok && bok {
		return as.Value == bs.Value
	}
	return false
}

// evalCondition evaluates a substituted condition expression against
// the currently stored item (nil when absent).
func evalCondition(cond string, values map[string]types.AttributeValue, stored map[string]types.AttributeValue) (bool, error) {
	if m := notExistsPattern.FindStringSubmatch(cond); m != nil {
		if stored == nil {
			return true, nil
		}
		_, exists := resolvePath(stored, m[1])
		return !exists, nil
	}
	if m := equalityPattern.FindStringSubmatch(cond); m != nil {
		if stored == nil {
			return false, nil
		}
		actual, ok := resolvePath(stored, m[1])
		if !ok {
			return false, nil
		}
		expected, ok := values[m[2]]
		if !ok {
			return false, fmt.Errorf("unbound expression value %s", m[2])
		}
		return attributesEqual(actual, expected), nil
	}
	return false, fmt.Errorf("unsupported condition expression %q", cond)
}

func (f *fakeClient) PutItem(ctx context.Context, in *awsdynamodb.PutItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeInjectedError(); err != nil {
		return nil, err
	}

	key := itemKey(in.Item)
	if in.ConditionExpression != nil {
		cond := substituteNames(*in.ConditionExpression, in.ExpressionAttributeNames)
		ok, err := evalCondition(cond, in.ExpressionAttributeValues, f.items[key])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	f.items[key] = in.Item
	return &awsdynamodb.PutItemOutput{}, nil
}

// sortKeyForPartition maps an index partition key attribute to its
// sort key attribute.
var sortKeyForPartition = map[string]string{
	keyAttrPK0: keyAttrSK0,
	keyAttrPK1: keyAttrSK1,
	keyAttrPK2: keyAttrSK2,
	keyAttrPK3: keyAttrSK3,
	keyAttrPK4: keyAttrSK4,
}

func (f *fakeClient) Query(ctx context.Context, in *awsdynamodb.QueryInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeInjectedError(); err != nil {
		return nil, err
	}

	keyCond := substituteNames(aws.ToString(in.KeyConditionExpression), in.ExpressionAttributeNames)
	m := equalityPattern.FindStringSubmatch(keyCond)
	if m == nil {
		return nil, fmt.Errorf("unsupported key condition %q", keyCond)
	}
	pkAttr := m[1]
	pkValue, ok := in.ExpressionAttributeValues[m[2]].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("unbound key value %s", m[2])
	}
	skAttr := sortKeyForPartition[pkAttr]

	var matches []map[string]types.AttributeValue
	for _, item := range f.items {
		if stringAttr(item, pkAttr) == pkValue.Value {
			matches = append(matches, item)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := stringAttr(matches[i], skAttr), stringAttr(matches[j], skAttr)
		if a != b {
			return a < b
		}
		return itemKey(matches[i]) < itemKey(matches[j])
	})

	// resume after the exclusive start key
	if len(in.ExclusiveStartKey) > 0 {
		startKey := itemKey(in.ExclusiveStartKey)
		resumeAt := len(matches)
		for i, item := range matches {
			if itemKey(item) == startKey {
				resumeAt = i + 1
				break
			}
		}
		matches = matches[resumeAt:]
	}

	out := &awsdynamodb.QueryOutput{}
	limit := len(matches)
	if in.Limit != nil && int(*in.Limit) < limit {
		limit = int(*in.Limit)
	}
	scanned := matches[:limit]
	if limit < len(matches) {
		last := scanned[len(scanned)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			keyAttrPK0: last[keyAttrPK0],
			keyAttrSK0: last[keyAttrSK0],
			pkAttr:     last[pkAttr],
			skAttr:     last[skAttr],
		}
	}

	// the filter applies after the page was cut, like the real store
	filter := ""
	if in.FilterExpression != nil {
		filter = substituteNames(*in.FilterExpression, in.ExpressionAttributeNames)
	}
	for _, item := range scanned {
		if filter != "" {
			keep, err := evalCondition(filter, in.ExpressionAttributeValues, item)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeClient) TransactWriteItems(ctx context.Context, in *awsdynamodb.TransactWriteItemsInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeInjectedError(); err != nil {
		return nil, err
	}

	// first pass: evaluate every condition against the current state
	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, write := range in.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		switch {
		case write.Put != nil:
			if write.Put.ConditionExpression == nil {
				continue
			}
			cond := substituteNames(*write.Put.ConditionExpression, write.Put.ExpressionAttributeNames)
			ok, err := evalCondition(cond, write.Put.ExpressionAttributeValues, f.items[itemKey(write.Put.Item)])
			if err != nil {
				return nil, err
			}
			if !ok {
				reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
				failed = true
			}
		case write.Delete != nil:
			if write.Delete.ConditionExpression == nil {
				continue
			}
			cond := substituteNames(*write.Delete.ConditionExpression, write.Delete.ExpressionAttributeNames)
			ok, err := evalCondition(cond, write.Delete.ExpressionAttributeValues, f.items[itemKey(write.Delete.Key)])
			if err != nil {
				return nil, err
			}
			if !ok {
				reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
				failed = true
			}
		default:
			return nil, fmt.Errorf("unsupported transact write item")
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	// second pass: apply all writes
	for _, write := range in.TransactItems {
		switch {
		case write.Put != nil:
			f.items[itemKey(write.Put.Item)] = write.Put.Item
		case write.Delete != nil:
			delete(f.items, itemKey(write.Delete.Key))
		}
	}
	return &awsdynamodb.TransactWriteItemsOutput{}, nil
}

// itemCount reports how many items are stored, markers included
func (f *fakeClient) itemCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// hasKey reports whether an item exists at the given primary key
func (f *fakeClient) hasKey(pk, sk string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[pk+"|"+sk]
	return ok
}
