package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// UserHandler serves registration, token login/logout, user reads and admin
// role assignment.
type UserHandler struct {
	auth    *service.AuthService
	roles   *service.RoleService
	follows *service.FollowService
}

func NewUserHandler(auth *service.AuthService, roles *service.RoleService, follows *service.FollowService) *UserHandler {
	return &UserHandler{auth: auth, roles: roles, follows: follows}
}

// Register creates a new account with the default "user" role.
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(*user, false))
}

// Login exchanges credentials for a token. Token creation responds 201,
// same as logout.
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"auth_token": token})
}

// Logout revokes the presented token.
func (h *UserHandler) Logout(c *gin.Context) {
	token, _ := c.Get("token")
	tokenStr, _ := token.(string)

	if err := h.auth.Logout(c.Request.Context(), tokenStr); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{})
}

// ListUsers returns a page of users with is_subscribed computed for the
// requester.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, total, err := h.auth.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	requesterID := middleware.ContextUserID(c)
	results := make([]UserResponse, 0, len(users))
	for _, user := range users {
		subscribed, err := h.follows.IsFollowing(c.Request.Context(), requesterID, user.ID)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		results = append(results, NewUserResponse(user, subscribed))
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

// Me returns the authenticated user's own projection.
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.ContextUserID(c)
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(*user, false))
}

// GetUser returns one user with is_subscribed computed for the requester.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	subscribed, err := h.follows.IsFollowing(c.Request.Context(), middleware.ContextUserID(c), user.ID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(*user, subscribed))
}

// SetRole assigns a role to a user; admin only. The elevation flags are
// derived inside the role service.
func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req types.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.roles.SetRole(c.Request.Context(), id, models.Role(req.Role))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   user.ID,
		"role": string(user.Role.Role),
	})
}
