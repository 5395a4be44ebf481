package handler

import (
	"fmt"
	"net/http"

	"campbook/internal/middleware"
	"campbook/internal/model"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and user lookups
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse(user.View()))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(model.LoginResult{
		UserView: user.View(),
		Token:    session.IDToken,
	}))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, model.NewSuccessResponse(user.View()))
}

// Logout handles GET /auth/logout. Session invalidation happens client-side
// against the identity provider.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, model.NewMessageResponse("Logout handled on client by removing Firebase token"))
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse(fmt.Sprintf("Password reset email sent to %s", req.Email)))
}

// GetUser handles GET /auth/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(user.View()))
}
