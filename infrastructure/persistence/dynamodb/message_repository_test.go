package dynamodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func TestCreateMessageRequiresExistingResource(t *testing.T) {
	env := newTestEnv(t)

	message, err := publication.NewMessage("bob", publication.NewSortableIdentifier(), testCustomer(t), publication.MessageKindSupport, "hello")
	require.NoError(t, err)

	err = env.messages.Create(context.Background(), message)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateAndGetMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")
	message, err := publication.NewMessage("bob", resource.Identifier(), resource.Customer(), publication.MessageKindSupport, "please review")
	require.NoError(t, err)
	require.NoError(t, env.messages.Create(ctx, message))

	stored, err := env.messages.GetByIdentifier(ctx, message.Identifier())
	require.NoError(t, err)
	assert.True(t, message.Equals(stored))
}

func TestListMessagesByResourceInInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")

	sent := make([]*publication.Message, 0, 3)
	for _, text := range []string{"first", "second", "third"} {
		message, err := publication.NewMessage("bob", resource.Identifier(), resource.Customer(), publication.MessageKindDoiRequest, text)
		require.NoError(t, err)
		require.NoError(t, env.messages.Create(ctx, message))
		sent = append(sent, message)
	}

	stored, err := env.messages.ListByResource(ctx, resource.Customer(), resource.Identifier())
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, message := range stored {
		assert.True(t, sent[i].Equals(message))
	}
}

func TestMarkMessageReadWithVersionCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")
	message, err := publication.NewMessage("bob", resource.Identifier(), resource.Customer(), publication.MessageKindSupport, "hello")
	require.NoError(t, err)
	require.NoError(t, env.messages.Create(ctx, message))

	staleVersion := message.Version()
	message.MarkRead()
	require.NoError(t, env.messages.Update(ctx, message, staleVersion))

	stored, err := env.messages.GetByIdentifier(ctx, message.Identifier())
	require.NoError(t, err)
	assert.Equal(t, publication.MessageStatusRead, stored.Status())

	err = env.messages.Update(ctx, message, staleVersion)
	assert.True(t, pkgerrors.IsConflict(err))
}
