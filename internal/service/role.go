package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// RoleService performs explicit role transitions. There are no hooks firing
// on role writes; every assignment goes through SetRole.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// SetRole assigns a role to a user and persists the derived elevation flags
// together with the role row in one transaction.
func (s *RoleService) SetRole(ctx context.Context, userID int64, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Role").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		models.ApplyRole(&user, role)

		if err := tx.Save(user.Role).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"is_staff":     user.IsStaff,
				"is_superuser": user.IsSuperuser,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
