package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soundscope/soundscope-api/internal/dto"
	"github.com/soundscope/soundscope-api/internal/service"
	"github.com/soundscope/soundscope-api/internal/spotify"
)

// AnalyticsHandler proxies read-only Spotify analytics queries for the
// authenticated user
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// TopItems handles top artists/tracks queries
// @Summary Get a user's top artists or tracks
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param item_type path string true "artists or tracks"
// @Param time_range query string false "long_term, medium_term or short_term" default(medium_term)
// @Param limit query int false "Number of entities, 1-50" default(10)
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /analytics/top-items/{item_type} [get]
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	itemType := c.Param("item_type")
	if !spotify.ValidItemType(itemType) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "item_type must be 'artists' or 'tracks'",
		})
		return
	}

	timeRange := c.DefaultQuery("time_range", spotify.TimeRangeMedium)
	if !spotify.ValidTimeRange(timeRange) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "time_range must be 'long_term', 'medium_term' or 'short_term'",
		})
		return
	}

	limit, ok := queryInt(c, "limit", 10, 1, 50)
	if !ok {
		return
	}

	result, err := h.analyticsService.TopItems(c.Request.Context(), spotifyIDFromContext(c), itemType, timeRange, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

// Playlists handles playlist listing
// @Summary Get a user's playlists
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of playlists, 1-50" default(20)
// @Param offset query int false "Index of the first playlist" default(0)
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /analytics/playlists [get]
func (h *AnalyticsHandler) Playlists(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20, 1, 50)
	if !ok {
		return
	}

	offset, ok := queryInt(c, "offset", 0, 0, 100000)
	if !ok {
		return
	}

	result, err := h.analyticsService.Playlists(c.Request.Context(), spotifyIDFromContext(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

// RecentlyPlayed handles recently-played queries
// @Summary Get a user's recently played tracks
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of tracks, 1-50" default(20)
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /analytics/recently-played [get]
func (h *AnalyticsHandler) RecentlyPlayed(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20, 1, 50)
	if !ok {
		return
	}

	result, err := h.analyticsService.RecentlyPlayed(c.Request.Context(), spotifyIDFromContext(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

func spotifyIDFromContext(c *gin.Context) string {
	spotifyID, _ := c.Get("spotify_id")
	id, _ := spotifyID.(string)
	return id
}

// queryInt parses a bounded integer query parameter, writing a 400 response
// on invalid input
func queryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.DefaultQuery(name, strconv.Itoa(def))

	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: name + " must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		})
		return 0, false
	}

	return value, true
}
