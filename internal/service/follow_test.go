package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
)

func TestSubscribe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	follower := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)

	got, err := svc.Subscribe(context.Background(), follower.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)

	following, err := svc.IsFollowing(context.Background(), follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Follows are one-directional.
	reverse, err := svc.IsFollowing(context.Background(), author.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestSubscribeToSelf(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)

	_, err := svc.Subscribe(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, service.ErrSelfFollow)
}

func TestSubscribeTwice(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	follower := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)

	_, err := svc.Subscribe(context.Background(), follower.ID, author.ID)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), follower.ID, author.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyFollowing)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscribeMissingAuthor(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	follower := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)

	_, err := svc.Subscribe(context.Background(), follower.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUnsubscribeWithoutFollow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	follower := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)

	err := svc.Unsubscribe(context.Background(), follower.ID, author.ID)
	assert.ErrorIs(t, err, service.ErrNotFollowing)
}

func TestSubscriptionsList(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	follower := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	bob := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	carol := testhelpers.CreateTestUser(t, db, "carol", "carol@example.com", models.RoleUser)

	_, err := svc.Subscribe(context.Background(), follower.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Subscribe(context.Background(), follower.ID, carol.ID)
	require.NoError(t, err)

	authors, total, err := svc.Subscriptions(context.Background(), follower.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, authors, 2)

	// Newest follow first.
	assert.Equal(t, "carol", authors[0].Username)
	assert.Equal(t, "bob", authors[1].Username)
}

func TestAuthorRecipesLimit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFollowService(db)

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	for _, name := range []string{"soup", "stew", "salad"} {
		testhelpers.CreateTestRecipe(t, db, author, name, nil)
	}

	recipes, total, err := svc.AuthorRecipes(context.Background(), author.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, recipes, 2)
	assert.Equal(t, "salad", recipes[0].Name)

	all, total, err := svc.AuthorRecipes(context.Background(), author.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}
