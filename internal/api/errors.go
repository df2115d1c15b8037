package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

// abortWithServiceError translates a service failure into an HTTP response.
// Unknown errors are logged and hidden behind a generic 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrNotInBasket):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyIngredients),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrAlreadyInBasket),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrTagTaken),
		errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[api] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
