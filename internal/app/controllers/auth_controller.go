package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/services"
	"github.com/kaganyildiz/academix/internal/middleware"
)

// AuthController handles registration, login and account endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Account registered successfully"))
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// GetProfile handles GET /api/auth/profile
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	resp, err := ctrl.authService.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// UpdateProfile handles PUT /api/auth/profile
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.authService.UpdateProfile(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile updated successfully"))
}

// DeleteAccount handles DELETE /api/auth/account
func (ctrl *AuthController) DeleteAccount(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	if err := ctrl.authService.DeleteAccount(c.Request.Context(), identity.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Account deleted successfully"))
}
