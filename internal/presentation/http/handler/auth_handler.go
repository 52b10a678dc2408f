package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/presentation/http/dto/request"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	cartService *service.CartService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cartService *service.CartService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cartService: cartService,
	}
}

// Login handles operator login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          out.User,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// GetProfile returns the authenticated operator's account
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", user)
}

// Logout handles operator logout. Tokens are stateless, so the server
// only discards the operator's pending cart; the client drops its tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.cartService.Drop(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged out successfully", nil)
}
