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

func TestAddFavorite(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "soup", nil)

	got, err := svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)
	assert.Equal(t, "soup", got.Name)

	favorited, err := svc.IsFavorited(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestAddFavoriteTwice(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "soup", nil)

	_, err := svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyFavorited)

	var count int64
	require.NoError(t, db.Model(&models.FavoriteRecipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteMissingRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)

	_, err := svc.AddFavorite(context.Background(), user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRemoveFavoriteMissing(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "soup", nil)

	err := svc.RemoveFavorite(context.Background(), user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFavorited)
}

func TestBasketToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "soup", nil)

	_, err := svc.AddToBasket(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddToBasket(context.Background(), user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyInBasket)

	require.NoError(t, svc.RemoveFromBasket(context.Background(), user.ID, recipe.ID))

	err = svc.RemoveFromBasket(context.Background(), user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotInBasket)
}

func TestFavoriteAndBasketAreIndependent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewFavoriteService(db)

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "soup", nil)

	_, err := svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	inBasket, err := svc.IsInBasket(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, inBasket)
}
