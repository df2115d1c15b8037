package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// RecipeFilter narrows the recipe list. IsFavorited=false explicitly
// excludes the requester's favorites; IsInCart only acts when true.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *int64
	IsFavorited *bool
	IsInCart    *bool
	// RequesterID is zero for anonymous requests; favorite/cart filters are
	// ignored without it.
	RequesterID int64
	Page        int
	Limit       int
}

// RecipeService handles recipe CRUD with its ingredient and tag associations.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// validateIngredients enforces the submission invariants before anything is
// persisted: non-empty list, positive amounts, pairwise-distinct ids.
func validateIngredients(inputs []types.RecipeIngredientInput) error {
	if len(inputs) == 0 {
		return ErrEmptyIngredients
	}

	seen := make(map[int64]struct{}, len(inputs))
	for _, in := range inputs {
		if in.Amount < 1 {
			return ErrInvalidAmount
		}
		if _, dup := seen[in.ID]; dup {
			return ErrDuplicateIngredient
		}
		seen[in.ID] = struct{}{}
	}
	return nil
}

// CreateRecipe validates the submission, stores the image, and commits the
// recipe with its ingredient rows and tag links in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID int64, req types.RecipeRequest) (*models.Recipe, error) {
	if err := validateIngredients(req.Ingredients); err != nil {
		return nil, err
	}
	if req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}

	imageURL := ""
	if req.Image != "" {
		data, contentType, err := DecodeBase64Image(req.Image)
		if err != nil {
			return nil, err
		}
		imageURL, err = s.images.Store(ctx, data, contentType)
		if err != nil {
			return nil, err
		}
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
			return err
		}

		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := insertRecipeIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces the recipe's fields and associations. Existing
// ingredient rows are deleted and the submitted list inserted fresh; tags are
// replaced wholesale.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int64, req types.RecipeRequest) (*models.Recipe, error) {
	if err := validateIngredients(req.Ingredients); err != nil {
		return nil, err
	}
	if req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := recipe.Image
	if req.Image != "" {
		data, contentType, err := DecodeBase64Image(req.Image)
		if err != nil {
			return nil, err
		}
		imageURL, err = s.images.Store(ctx, data, contentType)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         req.Name,
			"text":         req.Text,
			"image":        imageURL,
			"cooking_time": req.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := insertRecipeIngredients(tx, id, req.Ingredients); err != nil {
			return err
		}
		return tx.Model(&models.Recipe{ID: id}).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe; ingredient rows, favorites and basket
// entries referencing it go with it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, m := range []interface{}{
			&models.RecipeIngredient{},
			&models.FavoriteRecipe{},
			&models.Basket{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// GetRecipe loads a recipe with its author, tags and ingredient rows.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes applies the filter and returns a page of recipes, newest first,
// plus the total match count.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		sub := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", sub)
	}

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	if filter.IsFavorited != nil && filter.RequesterID != 0 {
		sub := s.db.Model(&models.FavoriteRecipe{}).
			Select("recipe_id").
			Where("user_id = ?", filter.RequesterID)
		if *filter.IsFavorited {
			query = query.Where("recipes.id IN (?)", sub)
		} else {
			query = query.Where("recipes.id NOT IN (?)", sub)
		}
	}

	if filter.IsInCart != nil && *filter.IsInCart && filter.RequesterID != 0 {
		sub := s.db.Model(&models.Basket{}).
			Select("recipe_id").
			Where("user_id = ?", filter.RequesterID)
		query = query.Where("recipes.id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	var recipes []models.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// SearchIngredients matches ingredient names by case-insensitive substring.
func (s *RecipeService) SearchIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("id").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func loadTags(tx *gorm.DB, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func checkIngredientsExist(tx *gorm.DB, inputs []types.RecipeIngredientInput) error {
	ids := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrIngredientNotFound
	}
	return nil
}

func insertRecipeIngredients(tx *gorm.DB, recipeID int64, inputs []types.RecipeIngredientInput) error {
	rows := make([]models.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
	}
	return tx.Create(&rows).Error
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
