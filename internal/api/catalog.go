package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// CatalogHandler serves the tag and ingredient catalogs.
type CatalogHandler struct {
	catalog *service.CatalogService
	recipes *service.RecipeService
}

func NewCatalogHandler(catalog *service.CatalogService, recipes *service.RecipeService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, recipes: recipes}
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NewTagResponse(tag))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTagResponse(*tag))
}

// CreateTag adds a tag to the catalog. Admin only; the gate sits in the
// route middleware.
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req types.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.catalog.CreateTag(c.Request.Context(), req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewTagResponse(*tag))
}

// ListIngredients searches the ingredient catalog by name prefix, or returns
// everything when no name is given.
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.recipes.SearchIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, NewIngredientResponse(ing))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ingredient, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewIngredientResponse(*ingredient))
}
