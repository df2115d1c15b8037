package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/router"
	"github.com/plateful/backend/internal/service"
)

func main() {
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

	var tokenStore service.TokenStore
	var rateLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		if config.IsProduction() {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("[Main] Redis unavailable, token revocation and rate limiting disabled: %v", err)
	} else {
		tokenStore = service.NewRedisTokenStore(redisClient)
		rateLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure S3 storage: %v", err)
	}
	if s3cfg == nil {
		if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
			log.Fatalf("Failed to create media directory: %v", err)
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, tokenStore)
	roleService := service.NewRoleService(db)
	imageService := service.NewImageService(s3cfg, cfg.MediaDir)
	recipeService := service.NewRecipeService(db, imageService)
	favoriteService := service.NewFavoriteService(db)
	followService := service.NewFollowService(db)
	shoppingService := service.NewShoppingListService(db)
	catalogService := service.NewCatalogService(db)

	engine := router.SetupRouter(router.Deps{
		Users:         api.NewUserHandler(authService, roleService, followService),
		Recipes:       api.NewRecipeHandler(recipeService, favoriteService, followService, shoppingService, authService),
		Subscriptions: api.NewSubscriptionHandler(followService),
		Catalog:       api.NewCatalogHandler(catalogService, recipeService),
		Validator:     authService,
		UserLoader:    authService,
		RateLimiter:   rateLimiter,
		MediaDir:      localMediaDir(cfg, s3cfg),
	})

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("[Main] Listening on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("[Main] Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("[Main] Server stopped")
}

// localMediaDir returns the static media directory when images are stored on
// disk, or empty when S3 serves them.
func localMediaDir(cfg *config.Config, s3cfg *config.S3Config) string {
	if s3cfg != nil {
		return ""
	}
	return cfg.MediaDir
}
