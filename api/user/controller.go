// Package user exposes the account endpoints: registration, login, and
// password changes.
package user

import (
	"net/http"

	"bookstore/api/middleware"
	"bookstore/api/response"
	userapp "bookstore/application/user"

	"github.com/gin-gonic/gin"
)

// Controller handles account requests.
type Controller struct {
	users *userapp.ApplicationService
}

// NewController creates the user controller.
func NewController(users *userapp.ApplicationService) *Controller {
	return &Controller{users: users}
}

// RegisterRoutes registers the account routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.Register)
		users.POST("/login", c.Login)
		users.PUT("/password", middleware.RequireAuth(), c.ChangePassword)
	}
}

// Register creates a new account.
// POST /api/v1/users
func (c *Controller) Register(ctx *gin.Context) {
	var req userapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	user, err := c.users.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, user, "user registered successfully")
}

// Login authenticates and returns a token.
// POST /api/v1/users/login
func (c *Controller) Login(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.users.Login(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "login successful")
}

// ChangePassword updates the caller's password.
// PUT /api/v1/users/password
func (c *Controller) ChangePassword(ctx *gin.Context) {
	var req userapp.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	principal, _ := middleware.CurrentPrincipal(ctx)

	if err := c.users.ChangePassword(ctx.Request.Context(), principal, req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "password changed successfully")
}
