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

const testCustomerURI = "https://api.nva.example.org/customer/c1"

func seedResource(t *testing.T, repo *fakeResourceRepo, title string) *publication.Resource {
	t.Helper()
	customer, err := publication.NewCustomerID(testCustomerURI)
	require.NoError(t, err)
	resource, err := publication.NewResource("alice", customer, title)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), resource))
	return resource
}

func TestGetResource(t *testing.T) {
	repo := &fakeResourceRepo{}
	handler := NewResourceQueryHandler(repo, zap.NewNop())

	seeded := seedResource(t, repo, "The Work")

	result, err := handler.Handle(context.Background(), queries.GetResourceQuery{
		Identifier: seeded.Identifier().String(),
	})
	require.NoError(t, err)

	dto, ok := result.(*queries.ResourceResult)
	require.True(t, ok)
	assert.Equal(t, seeded.Identifier().String(), dto.Identifier)
	assert.Equal(t, "The Work", dto.Title)
	assert.Equal(t, string(publication.ResourceStatusDraft), dto.Status)
	assert.Equal(t, seeded.Version().String(), dto.RowVersion)
}

func TestGetResourceNotFound(t *testing.T) {
	handler := NewResourceQueryHandler(&fakeResourceRepo{}, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetResourceQuery{
		Identifier: publication.NewSortableIdentifier().String(),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestListResourcesByStatusPaging(t *testing.T) {
	repo := &fakeResourceRepo{}
	handler := NewResourceQueryHandler(repo, zap.NewNop())

	for i := 0; i < 5; i++ {
		seedResource(t, repo, "Draft Work")
	}

	first, err := handler.Handle(context.Background(), queries.ListResourcesByStatusQuery{
		CustomerURI: testCustomerURI,
		Status:      string(publication.ResourceStatusDraft),
		PageSize:    3,
	})
	require.NoError(t, err)

	firstPage, ok := first.(*queries.ResourceListResult)
	require.True(t, ok)
	require.Len(t, firstPage.Items, 3)
	require.NotEmpty(t, firstPage.NextCursor)

	second, err := handler.Handle(context.Background(), queries.ListResourcesByStatusQuery{
		CustomerURI: testCustomerURI,
		Status:      string(publication.ResourceStatusDraft),
		PageSize:    3,
		Cursor:      firstPage.NextCursor,
	})
	require.NoError(t, err)

	secondPage, ok := second.(*queries.ResourceListResult)
	require.True(t, ok)
	require.Len(t, secondPage.Items, 2)
	assert.Empty(t, secondPage.NextCursor)

	seen := make(map[string]bool)
	for _, item := range append(firstPage.Items, secondPage.Items...) {
		assert.False(t, seen[item.Identifier])
		seen[item.Identifier] = true
	}
}

func TestListResourcesUnknownStatus(t *testing.T) {
	q := queries.ListResourcesByStatusQuery{
		CustomerURI: testCustomerURI,
		Status:      "ARCHIVED",
	}
	err := q.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}
