package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecipeHandler serves recipe CRUD, the favorite/cart toggles and the
// shopping-list download.
type RecipeHandler struct {
	recipes   *service.RecipeService
	favorites *service.FavoriteService
	follows   *service.FollowService
	shopping  *service.ShoppingListService
	users     middleware.UserLoader
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	favorites *service.FavoriteService,
	follows *service.FollowService,
	shopping *service.ShoppingListService,
	users middleware.UserLoader,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		favorites: favorites,
		follows:   follows,
		shopping:  shopping,
		users:     users,
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		RequesterID: middleware.ContextUserID(c),
		TagSlugs:    c.QueryArray("tags"),
	}

	if author := c.Query("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &id
	}

	if fav, ok := boolQuery(c, "is_favorited"); ok {
		filter.IsFavorited = &fav
	}
	if cart, ok := boolQuery(c, "is_in_shopping_cart"); ok {
		filter.IsInCart = &cart
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	recipes, total, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	results := make([]RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		detail, err := h.buildDetail(c, recipe)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		results = append(results, detail)
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Results: results,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	detail, err := h.buildDetail(c, *recipe)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), middleware.ContextUserID(c), req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	detail, err := h.buildDetail(c, *recipe)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.canMutate(c, id) {
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	detail, err := h.buildDetail(c, *recipe)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if !h.canMutate(c, id) {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.addPair(c, h.favorites.AddFavorite)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.removePair(c, h.favorites.RemoveFavorite)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addPair(c, h.favorites.AddToBasket)
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removePair(c, h.favorites.RemoveFromBasket)
}

// DownloadShoppingCart aggregates the cart and returns the plain-text list
// as an attachment. An empty cart is a 400, not an empty file.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID := middleware.ContextUserID(c)

	items, err := h.shopping.Items(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	now := time.Now()
	body := service.Render(user.Username, now, items)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.Filename(user.Username, now)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *RecipeHandler) addPair(c *gin.Context, add func(ctx context.Context, userID, recipeID int64) (*models.Recipe, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := add(c.Request.Context(), middleware.ContextUserID(c), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRecipeMinimal(*recipe))
}

func (h *RecipeHandler) removePair(c *gin.Context, remove func(ctx context.Context, userID, recipeID int64) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := remove(c.Request.Context(), middleware.ContextUserID(c), id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// canMutate enforces the author-or-admin gate for object-level mutation.
// Writes an error response and returns false when the caller may not touch
// the recipe.
func (h *RecipeHandler) canMutate(c *gin.Context, recipeID int64) bool {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		abortWithServiceError(c, err)
		return false
	}

	userID := middleware.ContextUserID(c)
	if recipe.AuthorID == userID {
		return true
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err == nil && user.IsAdmin() {
		return true
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "only the author or an admin may modify this recipe"})
	return false
}

func (h *RecipeHandler) buildDetail(c *gin.Context, recipe models.Recipe) (RecipeDetail, error) {
	requesterID := middleware.ContextUserID(c)

	favorited := false
	inCart := false
	subscribed := false

	if requesterID != 0 {
		var err error
		if favorited, err = h.favorites.IsFavorited(c.Request.Context(), requesterID, recipe.ID); err != nil {
			return RecipeDetail{}, err
		}
		if inCart, err = h.favorites.IsInBasket(c.Request.Context(), requesterID, recipe.ID); err != nil {
			return RecipeDetail{}, err
		}
		if subscribed, err = h.follows.IsFollowing(c.Request.Context(), requesterID, recipe.AuthorID); err != nil {
			return RecipeDetail{}, err
		}
	}

	return NewRecipeDetail(recipe, subscribed, favorited, inCart), nil
}

func boolQuery(c *gin.Context, name string) (bool, bool) {
	raw, exists := c.GetQuery(name)
	if !exists {
		return false, false
	}
	switch raw {
	case "1", "true", "True":
		return true, true
	case "0", "false", "False":
		return false, true
	}
	return false, false
}
