package acceptance

import (
	"encoding/json"
	"net/http"
)

func (s *Suite) analyticsGet(path, sessionToken string) *http.Response {
	s.T().Helper()

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+path, nil)
	s.Require().NoError(err)
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestTopItems_Success() {
	cbResp := s.grantLogin("code-1", "listener1")
	s.Spotify.AllowRefresh("rt-listener1", stubRefresh{AccessToken: "at-fresh"})

	resp := s.analyticsGet("/api/v1/analytics/top-items/artists?time_range=short_term&limit=5", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.Contains(payload, "items")
}

func (s *Suite) TestTopItems_InvalidItemType() {
	cbResp := s.grantLogin("code-1", "listener1")

	resp := s.analyticsGet("/api/v1/analytics/top-items/albums", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestTopItems_InvalidTimeRange() {
	cbResp := s.grantLogin("code-1", "listener1")

	resp := s.analyticsGet("/api/v1/analytics/top-items/tracks?time_range=all_time", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestPlaylists_Success() {
	cbResp := s.grantLogin("code-1", "listener1")
	s.Spotify.AllowRefresh("rt-listener1", stubRefresh{AccessToken: "at-fresh"})

	resp := s.analyticsGet("/api/v1/analytics/playlists?limit=10&offset=0", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestRecentlyPlayed_Success() {
	cbResp := s.grantLogin("code-1", "listener1")
	s.Spotify.AllowRefresh("rt-listener1", stubRefresh{AccessToken: "at-fresh"})

	resp := s.analyticsGet("/api/v1/analytics/recently-played", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestAnalytics_RequiresSession() {
	resp := s.analyticsGet("/api/v1/analytics/top-items/artists", "")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestAnalytics_RevokedProviderGrant() {
	cbResp := s.grantLogin("code-1", "listener1")
	// No refresh grant registered: the provider rejects the stored token

	resp := s.analyticsGet("/api/v1/analytics/playlists", cbResp.SessionToken)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
