package service_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

// stubImageStore records uploads without touching disk or S3.
type stubImageStore struct {
	stored int
}

func (s *stubImageStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	s.stored++
	return "/media/recipes/test.png", nil
}

func TestCreateRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	tag := testhelpers.CreateTestTag(t, db, "Breakfast", "E26C2D", "breakfast")

	recipe, err := svc.CreateRecipe(context.Background(), author.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix and fry",
		CookingTime: 20,
		Tags:        []int64{tag.ID},
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)

	assert.Equal(t, "pancakes", recipe.Name)
	assert.Equal(t, author.ID, recipe.AuthorID)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "breakfast", recipe.Tags[0].Slug)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, flour.ID, recipe.Ingredients[0].IngredientID)
	assert.Equal(t, 200, recipe.Ingredients[0].Amount)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "bob", recipe.Author.Username)
}

func TestCreateRecipeStoresImage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	images := &stubImageStore{}
	svc := service.NewRecipeService(db, images)

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	recipe, err := svc.CreateRecipe(context.Background(), author.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix and fry",
		CookingTime: 20,
		Image:       payload,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, images.stored)
	assert.Equal(t, "/media/recipes/test.png", recipe.Image)
}

func TestCreateRecipeValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	base := types.RecipeRequest{Name: "pancakes", Text: "mix", CookingTime: 20}

	cases := []struct {
		name string
		req  func() types.RecipeRequest
		want error
	}{
		{
			name: "no ingredients",
			req: func() types.RecipeRequest {
				r := base
				return r
			},
			want: service.ErrEmptyIngredients,
		},
		{
			name: "zero amount",
			req: func() types.RecipeRequest {
				r := base
				r.Ingredients = []types.RecipeIngredientInput{{ID: flour.ID, Amount: 0}}
				return r
			},
			want: service.ErrInvalidAmount,
		},
		{
			name: "duplicate ingredient",
			req: func() types.RecipeRequest {
				r := base
				r.Ingredients = []types.RecipeIngredientInput{
					{ID: flour.ID, Amount: 100},
					{ID: flour.ID, Amount: 50},
				}
				return r
			},
			want: service.ErrDuplicateIngredient,
		},
		{
			name: "unknown ingredient",
			req: func() types.RecipeRequest {
				r := base
				r.Ingredients = []types.RecipeIngredientInput{{ID: 9999, Amount: 100}}
				return r
			},
			want: service.ErrIngredientNotFound,
		},
		{
			name: "zero cooking time",
			req: func() types.RecipeRequest {
				r := base
				r.CookingTime = 0
				r.Ingredients = []types.RecipeIngredientInput{{ID: flour.ID, Amount: 100}}
				return r
			},
			want: service.ErrInvalidCookingTime,
		},
		{
			name: "unknown tag",
			req: func() types.RecipeRequest {
				r := base
				r.Tags = []int64{9999}
				r.Ingredients = []types.RecipeIngredientInput{{ID: flour.ID, Amount: 100}}
				return r
			},
			want: service.ErrTagNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(context.Background(), author.ID, tc.req())
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Nothing was persisted by any of the rejected submissions.
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	sugar := testhelpers.CreateTestIngredient(t, db, "sugar", "g")

	recipe, err := svc.CreateRecipe(context.Background(), author.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix and fry",
		CookingTime: 20,
		Ingredients: []types.RecipeIngredientInput{
			{ID: flour.ID, Amount: 200},
			{ID: sugar.ID, Amount: 50},
		},
	})
	require.NoError(t, err)

	// Resubmitting flour with a new amount replaces the old row instead of
	// adding to it; sugar disappears entirely.
	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, types.RecipeRequest{
		Name:        "thin pancakes",
		Text:        "mix and fry thin",
		CookingTime: 15,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 120}},
	})
	require.NoError(t, err)

	assert.Equal(t, "thin pancakes", updated.Name)
	assert.Equal(t, 15, updated.CookingTime)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, flour.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, 120, updated.Ingredients[0].Amount)

	var rows int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateRecipeKeepsImageWhenOmitted(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	images := &stubImageStore{}
	svc := service.NewRecipeService(db, images)

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	recipe, err := svc.CreateRecipe(context.Background(), author.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix",
		CookingTime: 20,
		Image:       payload,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix well",
		CookingTime: 20,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)
	assert.Equal(t, recipe.Image, updated.Image)
	assert.Equal(t, 1, images.stored)
}

func TestDeleteRecipeCleansUpReferences(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	author := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	fan := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	recipe, err := svc.CreateRecipe(context.Background(), author.ID, types.RecipeRequest{
		Name:        "pancakes",
		Text:        "mix",
		CookingTime: 20,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.FavoriteRecipe{UserID: fan.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.Basket{UserID: fan.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, svc.DeleteRecipe(context.Background(), recipe.ID))

	_, err = svc.GetRecipe(context.Background(), recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	for _, m := range []interface{}{&models.RecipeIngredient{}, &models.FavoriteRecipe{}, &models.Basket{}} {
		var count int64
		require.NoError(t, db.Model(m).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}

func TestListRecipesFilters(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	bob := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	alice := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	breakfast := testhelpers.CreateTestTag(t, db, "Breakfast", "E26C2D", "breakfast")
	dinner := testhelpers.CreateTestTag(t, db, "Dinner", "8775D2", "dinner")

	mk := func(authorID int64, name string, tags []int64) *models.Recipe {
		r, err := svc.CreateRecipe(context.Background(), authorID, types.RecipeRequest{
			Name:        name,
			Text:        "text",
			CookingTime: 10,
			Tags:        tags,
			Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 10}},
		})
		require.NoError(t, err)
		return r
	}

	pancakes := mk(bob.ID, "pancakes", []int64{breakfast.ID})
	stew := mk(bob.ID, "stew", []int64{dinner.ID})
	salad := mk(alice.ID, "salad", []int64{breakfast.ID, dinner.ID})

	// Tag filter is a union across slugs, without duplicate rows.
	recipes, total, err := svc.ListRecipes(context.Background(), service.RecipeFilter{
		TagSlugs: []string{"breakfast", "dinner"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, recipes, 3)

	// Author filter.
	recipes, total, err = svc.ListRecipes(context.Background(), service.RecipeFilter{AuthorID: &bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, recipes, 2)
	assert.Equal(t, stew.ID, recipes[0].ID)

	// Favorite filter: true selects, false excludes.
	require.NoError(t, db.Create(&models.FavoriteRecipe{UserID: alice.ID, RecipeID: pancakes.ID}).Error)

	yes := true
	recipes, total, err = svc.ListRecipes(context.Background(), service.RecipeFilter{
		IsFavorited: &yes,
		RequesterID: alice.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, pancakes.ID, recipes[0].ID)

	no := false
	recipes, total, err = svc.ListRecipes(context.Background(), service.RecipeFilter{
		IsFavorited: &no,
		RequesterID: alice.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Cart filter only acts when true.
	require.NoError(t, db.Create(&models.Basket{UserID: alice.ID, RecipeID: salad.ID}).Error)
	recipes, total, err = svc.ListRecipes(context.Background(), service.RecipeFilter{
		IsInCart:    &yes,
		RequesterID: alice.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, salad.ID, recipes[0].ID)

	recipes, total, err = svc.ListRecipes(context.Background(), service.RecipeFilter{
		IsInCart:    &no,
		RequesterID: alice.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestListRecipesPagination(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	bob := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com", models.RoleUser)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	for i := 0; i < 5; i++ {
		_, err := svc.CreateRecipe(context.Background(), bob.ID, types.RecipeRequest{
			Name:        "recipe",
			Text:        "text",
			CookingTime: 10,
			Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 10}},
		})
		require.NoError(t, err)
	}

	page1, total, err := svc.ListRecipes(context.Background(), service.RecipeFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := svc.ListRecipes(context.Background(), service.RecipeFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	// Newest first across pages.
	assert.Greater(t, page1[0].ID, page1[1].ID)
	assert.Greater(t, page1[1].ID, page3[0].ID)
}

func TestSearchIngredients(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRecipeService(db, &stubImageStore{})

	testhelpers.CreateTestIngredient(t, db, "Brown Sugar", "g")
	testhelpers.CreateTestIngredient(t, db, "sugar", "g")
	testhelpers.CreateTestIngredient(t, db, "salt", "g")

	found, err := svc.SearchIngredients(context.Background(), "sug")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := svc.SearchIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
