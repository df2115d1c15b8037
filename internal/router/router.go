package router

import (
	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Users         *api.UserHandler
	Recipes       *api.RecipeHandler
	Subscriptions *api.SubscriptionHandler
	Catalog       *api.CatalogHandler

	Validator   middleware.TokenValidator
	UserLoader  middleware.UserLoader
	RateLimiter *middleware.RateLimiter

	CORSOrigins []string
	MediaDir    string
}

// SetupRouter configures the application routes.
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(deps.CORSOrigins))

	if deps.MediaDir != "" {
		router.Static("/media", deps.MediaDir)
	}

	authed := middleware.AuthMiddleware(deps.Validator)
	optional := middleware.OptionalAuthMiddleware(deps.Validator)
	adminOnly := middleware.AdminOrReadOnly(deps.UserLoader)

	apiGroup := router.Group("/api")

	users := apiGroup.Group("/users")
	{
		users.POST("", deps.Users.Register)
		users.GET("", optional, deps.Users.ListUsers)
		users.GET("/me", authed, deps.Users.Me)
		users.GET("/subscriptions", authed, deps.Subscriptions.Subscriptions)
		users.GET("/:id", optional, deps.Users.GetUser)
		users.POST("/:id/subscribe", authed, deps.Subscriptions.Subscribe)
		users.DELETE("/:id/subscribe", authed, deps.Subscriptions.Unsubscribe)
		users.POST("/:id/role", authed, adminOnly, deps.Users.SetRole)
	}

	token := apiGroup.Group("/auth/token")
	{
		token.POST("/login", deps.Users.Login)
		token.POST("/logout", authed, deps.Users.Logout)
	}

	recipes := apiGroup.Group("/recipes")
	{
		recipes.GET("", optional, deps.Recipes.ListRecipes)
		recipes.GET("/download_shopping_cart", authed, deps.Recipes.DownloadShoppingCart)
		recipes.GET("/:id", optional, deps.Recipes.GetRecipe)

		create := []gin.HandlerFunc{authed}
		if deps.RateLimiter != nil {
			create = append(create, deps.RateLimiter.Middleware())
		}
		recipes.POST("", append(create, deps.Recipes.CreateRecipe)...)

		recipes.PATCH("/:id", authed, deps.Recipes.UpdateRecipe)
		recipes.PUT("/:id", authed, deps.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", authed, deps.Recipes.DeleteRecipe)

		recipes.POST("/:id/favorite", authed, deps.Recipes.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", authed, deps.Recipes.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", authed, deps.Recipes.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart", authed, deps.Recipes.RemoveFromShoppingCart)
	}

	tags := apiGroup.Group("/tags")
	{
		tags.GET("", deps.Catalog.ListTags)
		tags.GET("/:id", deps.Catalog.GetTag)
		tags.POST("", authed, adminOnly, deps.Catalog.CreateTag)
	}

	ingredients := apiGroup.Group("/ingredients")
	{
		ingredients.GET("", deps.Catalog.ListIngredients)
		ingredients.GET("/:id", deps.Catalog.GetIngredient)
	}

	return router
}
