package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// CatalogService serves the seeded tag and ingredient catalogs.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListTags returns all tags, newest first. The tag catalog is small and
// unpaginated.
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag loads one tag by id.
func (s *CatalogService) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag stores a new tag; the color is normalized to bare hex digits.
func (s *CatalogService) CreateTag(ctx context.Context, req types.TagRequest) (*models.Tag, error) {
	tag := models.Tag{
		Name:  req.Name,
		Color: strings.ToUpper(strings.TrimPrefix(req.Color, "#")),
		Slug:  req.Slug,
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("name = ? OR color = ? OR slug = ?", tag.Name, tag.Color, tag.Slug).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTagTaken
	}

	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagTaken
		}
		return nil, err
	}
	return &tag, nil
}

// GetIngredient loads one ingredient by id.
func (s *CatalogService) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}
