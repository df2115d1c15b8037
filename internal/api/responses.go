package api

import (
	"strings"

	"github.com/plateful/backend/internal/models"
)

// Each operation maps to one explicit response shape; nothing is selected by
// action name at runtime.

// TagResponse is the wire form of a tag. The color always carries the
// leading '#' even though it is stored without one.
type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func NewTagResponse(tag models.Tag) TagResponse {
	color := tag.Color
	if color != "" && !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: color,
		Slug:  tag.Slug,
	}
}

// IngredientResponse is the wire form of a catalog ingredient.
type IngredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func NewIngredientResponse(ing models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ing.ID, Name: ing.Name, Unit: ing.Unit}
}

// RecipeIngredientResponse is one ingredient row inside a recipe detail.
type RecipeIngredientResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Amount int    `json:"amount"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func NewUserResponse(user models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// RecipeMinimal is the compact projection returned by favorite and cart
// additions and inside subscription listings.
type RecipeMinimal struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func NewRecipeMinimal(recipe models.Recipe) RecipeMinimal {
	return RecipeMinimal{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// RecipeDetail is the full recipe projection.
type RecipeDetail struct {
	ID               int64                      `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// NewRecipeDetail builds the detail projection. The recipe must be loaded
// with Author, Tags and Ingredients.Ingredient.
func NewRecipeDetail(recipe models.Recipe, authorSubscribed, favorited, inCart bool) RecipeDetail {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, NewTagResponse(tag))
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		row := RecipeIngredientResponse{Amount: ri.Amount, ID: ri.IngredientID}
		if ri.Ingredient != nil {
			row.Name = ri.Ingredient.Name
			row.Unit = ri.Ingredient.Unit
		}
		ingredients = append(ingredients, row)
	}

	author := UserResponse{}
	if recipe.Author != nil {
		author = NewUserResponse(*recipe.Author, authorSubscribed)
	}

	return RecipeDetail{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// SubscriptionResponse is an author projection with their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeMinimal `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

func NewSubscriptionResponse(author models.User, recipes []models.Recipe, total int64) SubscriptionResponse {
	minimal := make([]RecipeMinimal, 0, len(recipes))
	for _, r := range recipes {
		minimal = append(minimal, NewRecipeMinimal(r))
	}
	return SubscriptionResponse{
		UserResponse: NewUserResponse(author, true),
		Recipes:      minimal,
		RecipesCount: total,
	}
}

// PageResponse wraps a paginated list.
type PageResponse struct {
	Count   int64       `json:"count"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Results interface{} `json:"results"`
}
