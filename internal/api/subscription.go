package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// SubscriptionHandler serves author follows and the subscription feed.
type SubscriptionHandler struct {
	follows *service.FollowService
}

func NewSubscriptionHandler(follows *service.FollowService) *SubscriptionHandler {
	return &SubscriptionHandler{follows: follows}
}

// Subscribe follows an author and returns their projection with a recipe
// preview capped by recipes_limit.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	author, err := h.follows.Subscribe(c.Request.Context(), middleware.ContextUserID(c), authorID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	recipes, total, err := h.follows.AuthorRecipes(c.Request.Context(), author.ID, recipesLimit(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSubscriptionResponse(*author, recipes, total))
}

// Unsubscribe removes the follow. A follow that never existed is a 400.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.follows.Unsubscribe(c.Request.Context(), middleware.ContextUserID(c), authorID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the caller follows, each with a recipe
// preview.
func (h *SubscriptionHandler) Subscriptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	authors, total, err := h.follows.Subscriptions(c.Request.Context(), middleware.ContextUserID(c), page, limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	perAuthor := recipesLimit(c)
	results := make([]SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		recipes, count, err := h.follows.AuthorRecipes(c.Request.Context(), author.ID, perAuthor)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		results = append(results, NewSubscriptionResponse(author, recipes, count))
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

// recipesLimit reads the optional recipes_limit query parameter. Absent or
// unparseable means no cap.
func recipesLimit(c *gin.Context) int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
