package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Valid values for the top-items query
const (
	ItemTypeArtists = "artists"
	ItemTypeTracks  = "tracks"

	TimeRangeLong   = "long_term"
	TimeRangeMedium = "medium_term"
	TimeRangeShort  = "short_term"
)

// ValidItemType reports whether itemType is accepted by the top-items endpoint
func ValidItemType(itemType string) bool {
	return itemType == ItemTypeArtists || itemType == ItemTypeTracks
}

// ValidTimeRange reports whether timeRange is accepted by the top-items endpoint
func ValidTimeRange(timeRange string) bool {
	return timeRange == TimeRangeLong || timeRange == TimeRangeMedium || timeRange == TimeRangeShort
}

// TopItems retrieves the user's top artists or tracks. The response is
// proxied verbatim, so it is returned as raw JSON.
func (c *Client) TopItems(ctx context.Context, accessToken, itemType, timeRange string, limit int) (json.RawMessage, error) {
	if !ValidItemType(itemType) {
		return nil, fmt.Errorf("item type must be %q or %q", ItemTypeArtists, ItemTypeTracks)
	}
	if !ValidTimeRange(timeRange) {
		return nil, fmt.Errorf("time range must be %q, %q or %q", TimeRangeLong, TimeRangeMedium, TimeRangeShort)
	}

	params := url.Values{}
	params.Set("time_range", timeRange)
	params.Set("limit", strconv.Itoa(limit))

	var result json.RawMessage
	if err := c.get(ctx, accessToken, "/me/top/"+itemType, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Playlists retrieves the user's playlists with pagination
func (c *Client) Playlists(ctx context.Context, accessToken string, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var result json.RawMessage
	if err := c.get(ctx, accessToken, "/me/playlists", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RecentlyPlayed retrieves the user's recently played tracks
func (c *Client) RecentlyPlayed(ctx context.Context, accessToken string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var result json.RawMessage
	if err := c.get(ctx, accessToken, "/me/player/recently-played", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}
