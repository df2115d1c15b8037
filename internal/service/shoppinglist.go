package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// ShoppingListItem is one aggregated group: ingredient quantities are merged
// across every recipe in the cart, keyed by the (name, unit) pair. Two
// ingredients sharing a name but measured in different units stay separate.
type ShoppingListItem struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Amount int    `json:"amount"`
}

// ShoppingListService computes the aggregated shopping list for a user's
// cart and renders it as plain text.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Items runs the aggregation: baskets joined through recipe_ingredients to
// ingredients, grouped by (name, unit), amounts summed. The ORDER BY keeps
// the output byte-stable for identical input. An empty cart is a distinct
// failure, not a zero-row success.
func (s *ShoppingListService) Items(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var cartSize int64
	if err := s.db.WithContext(ctx).Model(&models.Basket{}).
		Where("user_id = ?", userID).
		Count(&cartSize).Error; err != nil {
		return nil, err
	}
	if cartSize == 0 {
		return nil, ErrCartEmpty
	}

	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.unit AS unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN baskets ON baskets.recipe_id = recipe_ingredients.recipe_id").
		Where("baskets.user_id = ?", userID).
		Group("ingredients.name, ingredients.unit").
		Order("ingredients.name, ingredients.unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Render produces the downloadable plain-text document: a header naming the
// user and date, then one line per aggregated group.
func Render(username string, date time.Time, items []ShoppingListItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s, %s\n\n", username, date.Format("2006-01-02"))
	for _, item := range items {
		fmt.Fprintf(&b, "%s, %d %s\n", item.Name, item.Amount, item.Unit)
	}
	return b.String()
}

// Filename derives the attachment name from the username and date.
func Filename(username string, date time.Time) string {
	return fmt.Sprintf("%s_%s_shopping_list.txt", username, date.Format("2006-01-02"))
}
