package database

import (
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// AutoMigrate creates or updates the full schema, including the unique
// indexes and CHECK constraints the services rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.FavoriteRecipe{},
		&models.Basket{},
	)
}
