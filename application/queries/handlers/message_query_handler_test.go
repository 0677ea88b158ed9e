package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/queries"
	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func seedMessage(t *testing.T, repo *fakeMessageRepo, resourceIdentifier publication.SortableIdentifier, text string) *publication.Message {
	t.Helper()
	customer, err := publication.NewCustomerID(testCustomerURI)
	require.NoError(t, err)
	message, err := publication.NewMessage("bob", resourceIdentifier, customer, publication.MessageKindSupport, text)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), message))
	return message
}

func TestGetMessage(t *testing.T) {
	repo := &fakeMessageRepo{}
	handler := NewMessageQueryHandler(repo, zap.NewNop())

	seeded := seedMessage(t, repo, publication.NewSortableIdentifier(), "first comment")

	result, err := handler.Handle(context.Background(), queries.GetMessageQuery{
		Identifier: seeded.Identifier().String(),
	})
	require.NoError(t, err)

	dto, ok := result.(*queries.MessageResult)
	require.True(t, ok)
	assert.Equal(t, "first comment", dto.Text)
	assert.Equal(t, "bob", dto.Sender)
	assert.Equal(t, string(publication.MessageStatusUnread), dto.Status)
}

func TestListMessagesByResource(t *testing.T) {
	repo := &fakeMessageRepo{}
	handler := NewMessageQueryHandler(repo, zap.NewNop())

	resourceIdentifier := publication.NewSortableIdentifier()
	seedMessage(t, repo, resourceIdentifier, "one")
	seedMessage(t, repo, resourceIdentifier, "two")
	seedMessage(t, repo, publication.NewSortableIdentifier(), "other conversation")

	result, err := handler.Handle(context.Background(), queries.ListMessagesByResourceQuery{
		CustomerURI:        testCustomerURI,
		ResourceIdentifier: resourceIdentifier.String(),
	})
	require.NoError(t, err)

	list, ok := result.(*queries.MessageListResult)
	require.True(t, ok)
	assert.Len(t, list.Items, 2)
}

func TestGetMessageNotFound(t *testing.T) {
	handler := NewMessageQueryHandler(&fakeMessageRepo{}, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetMessageQuery{
		Identifier: publication.NewSortableIdentifier().String(),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
