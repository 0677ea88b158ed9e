package dynamodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func TestCreateAndGetResource(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "On Reproducibility")

	stored, err := env.resources.GetByIdentifier(ctx, resource.Identifier())
	require.NoError(t, err)
	assert.True(t, resource.Equals(stored))
	assert.Equal(t, resource.Version().String(), stored.Version().String())

	// creation writes the dao plus its identifier marker
	marker := identifierEntryKey(resource.Identifier())
	assert.True(t, env.client.hasKey(marker, marker))
}

func TestGetMissingResourceIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resources.GetByIdentifier(context.Background(), publication.NewSortableIdentifier())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateDuplicateResourceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")

	err := env.resources.Create(ctx, resource)
	assert.True(t, pkgerrors.IsConflict(err))
	assert.Len(t, env.publisher.published(), 1, "failed creation must not publish a change")
}

func TestUpdateWithStaleVersionConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "first title")
	staleVersion := resource.Version()

	resource.SetTitle("second title")
	require.NoError(t, env.resources.Update(ctx, resource, staleVersion))
	assert.False(t, resource.Version().Equals(staleVersion))

	stored, err := env.resources.GetByIdentifier(ctx, resource.Identifier())
	require.NoError(t, err)
	assert.Equal(t, "second title", stored.Title())

	// replaying the update with the stale version must lose
	resource.SetTitle("third title")
	err = env.resources.Update(ctx, resource, staleVersion)
	assert.True(t, pkgerrors.IsConflict(err))

	stored, err = env.resources.GetByIdentifier(ctx, resource.Identifier())
	require.NoError(t, err)
	assert.Equal(t, "second title", stored.Title())
}

func TestConcurrentUpdatesWithSameVersionHaveOneWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")
	version := resource.Version()

	winners, losers := 0, 0
	for i := 0; i < 3; i++ {
		contender, err := env.resources.GetByIdentifier(ctx, resource.Identifier())
		require.NoError(t, err)
		contender.SetTitle("contender title")

		switch err := env.resources.Update(ctx, contender, version); {
		case err == nil:
			winners++
		case pkgerrors.IsConflict(err):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, 2, losers)
}

func TestUpdateMissingResourceIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	resource, err := publication.NewResource("alice", testCustomer(t), "title")
	require.NoError(t, err)

	err = env.resources.Update(context.Background(), resource, resource.Version())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")

	err := env.resources.Delete(ctx, resource.Identifier(), "mallory")
	assert.True(t, pkgerrors.IsBadRequest(err))
}

func TestDeleteRequiresDeletableState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")

	err := env.resources.Delete(ctx, resource.Identifier(), "alice")
	assert.True(t, pkgerrors.IsBadRequest(err), "plain drafts are not deletable")
}

func TestPublishedResourceWithDOIIsNeverDeletable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource, err := publication.NewResource("alice", testCustomer(t), "title")
	require.NoError(t, err)
	require.NoError(t, resource.AssignDOI("10.1000/182"))
	require.NoError(t, resource.Publish())
	require.NoError(t, env.resources.Create(ctx, resource))

	err = env.resources.Delete(ctx, resource.Identifier(), "alice")
	assert.True(t, pkgerrors.IsBadRequest(err))

	_, err = env.resources.GetByIdentifier(ctx, resource.Identifier())
	assert.NoError(t, err, "the resource must survive the rejected delete")
}

func TestDeleteRemovesDaoAndMarker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")
	version := resource.Version()
	require.NoError(t, resource.MarkForDeletion())
	require.NoError(t, env.resources.Update(ctx, resource, version))

	require.NoError(t, env.resources.Delete(ctx, resource.Identifier(), "alice"))

	_, err := env.resources.GetByIdentifier(ctx, resource.Identifier())
	assert.True(t, pkgerrors.IsNotFound(err))

	marker := identifierEntryKey(resource.Identifier())
	assert.False(t, env.client.hasKey(marker, marker))
	assert.Equal(t, 0, env.client.itemCount())
}

func TestListByCustomerAndStatusFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	drafts := make([]*publication.Resource, 0, 3)
	for _, title := range []string{"d1", "d2", "d3"} {
		drafts = append(drafts, createTestResource(t, env, "alice", title))
	}

	published, err := publication.NewResource("alice", testCustomer(t), "p1")
	require.NoError(t, err)
	require.NoError(t, published.Publish())
	require.NoError(t, env.resources.Create(ctx, published))

	page, err := env.resources.ListByCustomerAndStatus(ctx, testCustomer(t), publication.ResourceStatusDraft, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Empty(t, page.NextCursor)
	for i, item := range page.Items {
		assert.True(t, drafts[i].Equals(item), "items must come back in insertion order")
	}
}

func TestListByCustomerAndStatusPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"d1", "d2", "d3"} {
		createTestResource(t, env, "alice", title)
	}

	first, err := env.resources.ListByCustomerAndStatus(ctx, testCustomer(t), publication.ResourceStatusDraft, 2, "")
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := env.resources.ListByCustomerAndStatus(ctx, testCustomer(t), publication.ResourceStatusDraft, 2, first.NextCursor)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)

	seen := map[string]bool{}
	for _, item := range append(first.Items, second.Items...) {
		seen[item.Identifier().String()] = true
	}
	assert.Len(t, seen, 3, "pages must not overlap")
}

func TestMutationsPublishBeforeAndAfterImages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resource := createTestResource(t, env, "alice", "title")
	version := resource.Version()
	require.NoError(t, resource.MarkForDeletion())
	require.NoError(t, env.resources.Update(ctx, resource, version))
	require.NoError(t, env.resources.Delete(ctx, resource.Identifier(), "alice"))

	changes := env.publisher.published()
	require.Len(t, changes, 3, "exactly one change per successful mutation")

	assert.Nil(t, changes[0].Before)
	assert.NotNil(t, changes[0].After)

	assert.NotNil(t, changes[1].Before)
	assert.NotNil(t, changes[1].After)
	assert.Equal(t, string(publication.ResourceStatusDraft), changes[1].Before.StatusString())
	assert.Equal(t, string(publication.ResourceStatusDraftForDeletion), changes[1].After.StatusString())

	assert.NotNil(t, changes[2].Before)
	assert.Nil(t, changes[2].After)
}
