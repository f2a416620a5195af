package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundscope/soundscope-api/internal/dto"
	"github.com/soundscope/soundscope-api/internal/repository"
	"github.com/soundscope/soundscope-api/internal/service"
	"github.com/soundscope/soundscope-api/internal/spotify"
	"github.com/soundscope/soundscope-api/internal/utils"
)

// respondError maps a typed service/repository/provider failure onto a
// transport status. Spotify transport failures pass through the upstream
// status and body; everything unclassified is a 500.
func respondError(c *gin.Context, err error) {
	var apiErr *spotify.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, dto.ErrorResponse{
			Error:   "Spotify API error",
			Message: err.Error(),
			Details: apiErr.Body,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrMissingAuthorizationCode),
		errors.Is(err, service.ErrIncompleteTokenResponse),
		errors.Is(err, service.ErrMissingSpotifyUserID),
		errors.Is(err, service.ErrRefreshTokenMissing):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrDuplicateSpotifyID):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case errors.Is(err, utils.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, spotify.ErrNetwork):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "Bad gateway",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}
