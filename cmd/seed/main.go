package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
)

// ingredientRow matches the catalog dump format.
type ingredientRow struct {
	Name string `json:"name"`
	Unit string `json:"measurement_unit"`
}

var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "8775D2", Slug: "dinner"},
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "Path to the ingredients catalog JSON")
	skipTags := flag.Bool("skip-tags", false, "Do not seed the default tags")
	demo := flag.Bool("demo", false, "Seed demo users, recipes, follows and carts")
	demoAmount := flag.Int("amount", 100, "Ingredient amount used for demo recipes")
	adminEmail := flag.String("admin-email", "", "Create an admin account with this email")
	adminUsername := flag.String("admin-username", "admin", "Username for the admin account")
	adminPassword := flag.String("admin-password", "", "Password for the admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		n, err := seedIngredients(tx, *ingredientsPath)
		if err != nil {
			return err
		}
		log.Printf("[Seed] Ingredients: %d new", n)

		if !*skipTags {
			n, err := seedTags(tx)
			if err != nil {
				return err
			}
			log.Printf("[Seed] Tags: %d new", n)
		}

		if *demo {
			if err := seedDemo(tx, *demoAmount); err != nil {
				return err
			}
			log.Println("[Seed] Demo data ready")
		}

		if *adminEmail != "" {
			if *adminPassword == "" {
				return fmt.Errorf("admin-password is required when admin-email is set")
			}
			if err := seedAdmin(tx, *adminEmail, *adminUsername, *adminPassword); err != nil {
				return err
			}
			log.Printf("[Seed] Admin account %s ready", *adminEmail)
		}

		return nil
	})
	if err != nil {
		log.Fatalf("Seeding failed, nothing was written: %v", err)
	}

	log.Println("[Seed] Done")
}

func seedIngredients(tx *gorm.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read ingredients catalog: %w", err)
	}

	var rows []ingredientRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("parse ingredients catalog: %w", err)
	}

	created := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		unit := strings.TrimSpace(row.Unit)
		if name == "" || unit == "" {
			return 0, fmt.Errorf("ingredient with empty name or unit in %s", path)
		}

		ingredient := models.Ingredient{Name: name, Unit: unit}
		result := tx.Where(models.Ingredient{Name: name, Unit: unit}).FirstOrCreate(&ingredient)
		if result.Error != nil {
			return 0, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func seedTags(tx *gorm.DB) (int, error) {
	created := 0
	for _, tag := range defaultTags {
		row := tag
		result := tx.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&row)
		if result.Error != nil {
			return 0, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

// seedDemo creates two demo accounts, a recipe each, a follow between them
// and a stocked cart. Runs inside the caller's transaction, so a bad amount
// aborts the whole invocation.
func seedDemo(tx *gorm.DB, amount int) error {
	if amount < 1 {
		return fmt.Errorf("demo ingredient amount must be at least 1, got %d", amount)
	}

	users := make([]*models.User, 0, 2)
	for _, name := range []string{"demo_chef", "demo_foodie"} {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:     name,
			Email:        name + "@example.com",
			FirstName:    "Demo",
			LastName:     "Account",
			PasswordHash: string(hash),
		}
		models.ApplyRole(user, models.RoleUser)
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	var ingredients []models.Ingredient
	if err := tx.Limit(3).Order("id").Find(&ingredients).Error; err != nil {
		return err
	}
	if len(ingredients) == 0 {
		return fmt.Errorf("no ingredients to build demo recipes from")
	}

	recipes := make([]*models.Recipe, 0, len(users))
	for i, user := range users {
		recipe := &models.Recipe{
			AuthorID:    user.ID,
			Name:        fmt.Sprintf("Demo recipe %d", i+1),
			Text:        "Seeded demo recipe.",
			CookingTime: 15,
		}
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, ing := range ingredients {
			row := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Amount:       amount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		recipes = append(recipes, recipe)
	}

	follow := models.Follow{FollowerID: users[1].ID, AuthorID: users[0].ID}
	if err := tx.Create(&follow).Error; err != nil {
		return err
	}
	basket := models.Basket{UserID: users[1].ID, RecipeID: recipes[0].ID}
	return tx.Create(&basket).Error
}

func seedAdmin(tx *gorm.DB, email, username, password string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	models.ApplyRole(&user, models.RoleAdmin)

	return tx.Create(&user).Error
}
