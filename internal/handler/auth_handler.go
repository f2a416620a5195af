package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundscope/soundscope-api/internal/domain"
	"github.com/soundscope/soundscope-api/internal/dto"
	"github.com/soundscope/soundscope-api/internal/service"
	"github.com/soundscope/soundscope-api/internal/utils"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	jwtManager  *utils.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, jwtManager *utils.JWTManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtManager:  jwtManager,
	}
}

// Login handles the start of the Spotify authorization flow
// @Summary Get Spotify authorization URL
// @Description Returns the URL the client should redirect the user to for Spotify consent
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthURLResponse
// @Router /auth/spotify/login [get]
func (h *AuthHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AuthURLResponse{
		AuthURL: h.authService.AuthorizeURL(),
	})
}

// Callback handles the Spotify authorization callback
// @Summary Complete the Spotify authorization flow
// @Description Exchanges the authorization code, upserts the user and issues a session token
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.CallbackResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/spotify/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")

	result, err := h.authService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{
		SessionToken: result.SessionToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.jwtManager.GetSessionExpiry(),
		User: dto.UserInfo{
			ID:          result.User.ID,
			SpotifyID:   result.User.SpotifyID,
			DisplayName: result.User.DisplayName,
			Email:       result.User.Email,
		},
	})
}

// RefreshAccessToken handles provider access token refresh
// @Summary Refresh the Spotify access token
// @Description Obtains a new Spotify access token using the stored refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshAccessTokenRequest true "Refresh request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/spotify/refresh_access_token [post]
func (h *AuthHandler) RefreshAccessToken(c *gin.Context) {
	var req dto.RefreshAccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	tokens, err := h.authService.RefreshAccessToken(c.Request.Context(), req.SpotifyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		TokenType:    tokens.TokenType,
		Scope:        tokens.Scope,
		ExpiresIn:    tokens.ExpiresIn,
		RefreshToken: tokens.RefreshToken,
	})
}

// GetMe handles getting the current user profile
// @Summary Get current user profile
// @Description Get information about the current authenticated user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found in context",
		})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) dto.UserResponse {
	response := dto.UserResponse{
		ID:          user.ID,
		SpotifyID:   user.SpotifyID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format(time.RFC3339)
		response.LastLoginAt = &lastLogin
	}

	return response
}
