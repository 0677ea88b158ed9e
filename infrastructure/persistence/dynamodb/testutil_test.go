package dynamodb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/ports"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

func testTableConfig() TableConfig {
	return TableConfig{
		TableName:                 "nva-resources",
		ByTypeCustomerStatusIndex: "ByTypeCustomerStatus",
		ByCustomerResourceIndex:   "ByCustomerResource",
		ByTypeAndIdentifierIndex:  "ByTypeAndIdentifier",
		ByCristinIdentifierIndex:  "ByCristinIdentifier",
	}
}

// capturePublisher records published changes for assertions
type capturePublisher struct {
	mu      sync.Mutex
	changes []ports.EntityChange
	err     error
}

func (p *capturePublisher) PublishChange(_ context.Context, change ports.EntityChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, change)
	return nil
}

func (p *capturePublisher) published() []ports.EntityChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.EntityChange, len(p.changes))
	copy(out, p.changes)
	return out
}

type testEnv struct {
	client    *fakeClient
	publisher *capturePublisher
	resources *ResourceRepository
	tickets   *TicketRepository
	messages  *MessageRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	client := newFakeClient()
	publisher := &capturePublisher{}
	cfg := testTableConfig()
	logger := zap.NewNop()
	return &testEnv{
		client:    client,
		publisher: publisher,
		resources: NewResourceRepository(client, cfg, publisher, logger),
		tickets:   NewTicketRepository(client, cfg, publisher, logger),
		messages:  NewMessageRepository(client, cfg, publisher, logger),
	}
}

func testCustomer(t *testing.T) publication.CustomerID {
	t.Helper()
	customer, err := publication.NewCustomerID("https://api.nva.example.org/customer/c1")
	require.NoError(t, err)
	return customer
}

func createTestResource(t *testing.T, env *testEnv, owner, title string) *publication.Resource {
	t.Helper()
	resource, err := publication.NewResource(owner, testCustomer(t), title)
	require.NoError(t, err)
	require.NoError(t, env.resources.Create(context.Background(), resource))
	return resource
}
