package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// FollowService handles author subscriptions.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Subscribe creates the follow pair. Self-follows and duplicates fail with
// conflict errors; under races the unique index and CHECK constraint decide.
func (s *FollowService) Subscribe(ctx context.Context, followerID, authorID int64) (*models.User, error) {
	if followerID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyFollowing
	}

	follow := models.Follow{FollowerID: followerID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return &author, nil
}

// Unsubscribe removes the follow pair or fails with ErrNotFollowing.
func (s *FollowService) Unsubscribe(ctx context.Context, followerID, authorID int64) error {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether follower is subscribed to author.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID int64) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Subscriptions returns the authors the user follows, newest follow first,
// plus the total count for pagination.
func (s *FollowService) Subscriptions(ctx context.Context, followerID int64, page, limit int) ([]models.User, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 1 || limit > 100 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	var authors []models.User
	err := base.
		Order("follows.id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// AuthorRecipes returns up to limit recipes by the author, newest first,
// together with the author's total recipe count. limit <= 0 means no cap.
func (s *FollowService) AuthorRecipes(ctx context.Context, authorID int64, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}
