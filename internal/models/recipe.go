package models

import (
	"time"
)

// Tag is a seeded label recipes reference; recipes never own tags.
// The color is stored as six hex digits without the leading '#'.
type Tag struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:40;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:6;uniqueIndex" json:"color"`
	Slug  string `gorm:"size:50;uniqueIndex;not null" json:"slug"`
}

// Ingredient is a seeded (name, unit) catalog entry.
type Ingredient struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null;index" json:"name"`
	Unit string `gorm:"size:35;not null" json:"unit"`
}

type Recipe struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AuthorID    int64     `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Image       string    `gorm:"size:255" json:"image"`
	CookingTime int       `gorm:"not null;check:chk_cooking_time,cooking_time >= 1" json:"cooking_time"`

	Author      *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient joins a recipe to an ingredient with a quantity.
type RecipeIngredient struct {
	ID           int64 `gorm:"primaryKey" json:"id"`
	RecipeID     int64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID int64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int   `gorm:"not null;check:chk_amount,amount >= 1" json:"amount"`

	Ingredient *Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// FavoriteRecipe marks a recipe as favorited by a user. At most one row per
// (user, recipe); the unique index is the arbiter under concurrent writes.
type FavoriteRecipe struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	UserID   int64 `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID int64 `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Basket is the per-user shopping cart entry feeding the shopping-list
// aggregation.
type Basket struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	UserID   int64 `gorm:"not null;uniqueIndex:idx_basket_user_recipe" json:"user_id"`
	RecipeID int64 `gorm:"not null;uniqueIndex:idx_basket_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
