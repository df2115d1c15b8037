package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// FavoriteService handles the favorite and shopping-cart (user, recipe)
// toggles. Both share the same mechanics: a pre-check gives the friendly
// error, the unique index is the arbiter when concurrent writers race.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite adds the pair or fails with ErrAlreadyFavorited.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	return s.add(ctx, userID, recipeID, &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}, ErrAlreadyFavorited)
}

// RemoveFavorite removes the pair or fails with ErrNotFavorited.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.remove(ctx, &models.FavoriteRecipe{}, userID, recipeID, ErrNotFavorited)
}

// AddToBasket adds the pair or fails with ErrAlreadyInBasket.
func (s *FavoriteService) AddToBasket(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	return s.add(ctx, userID, recipeID, &models.Basket{UserID: userID, RecipeID: recipeID}, ErrAlreadyInBasket)
}

// RemoveFromBasket removes the pair or fails with ErrNotInBasket.
func (s *FavoriteService) RemoveFromBasket(ctx context.Context, userID, recipeID int64) error {
	return s.remove(ctx, &models.Basket{}, userID, recipeID, ErrNotInBasket)
}

// IsFavorited reports whether the user has favorited the recipe.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, recipeID int64) (bool, error) {
	return s.exists(ctx, &models.FavoriteRecipe{}, userID, recipeID)
}

// IsInBasket reports whether the recipe is in the user's cart.
func (s *FavoriteService) IsInBasket(ctx context.Context, userID, recipeID int64) (bool, error) {
	return s.exists(ctx, &models.Basket{}, userID, recipeID)
}

func (s *FavoriteService) add(ctx context.Context, userID, recipeID int64, row interface{}, dup error) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := s.exists(ctx, row, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, dup
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		// The losing side of a concurrent insert lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, dup
		}
		return nil, err
	}

	return &recipe, nil
}

func (s *FavoriteService) remove(ctx context.Context, model interface{}, userID, recipeID int64, missing error) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return missing
	}
	return nil
}

func (s *FavoriteService) exists(ctx context.Context, model interface{}, userID, recipeID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
