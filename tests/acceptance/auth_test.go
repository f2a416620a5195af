package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/soundscope/soundscope-api/internal/dto"
)

func (s *Suite) grantLogin(code, spotifyID string) dto.CallbackResponse {
	s.T().Helper()

	s.Spotify.GrantCode(code, stubGrant{
		AccessToken:  "at-" + spotifyID,
		RefreshToken: "rt-" + spotifyID,
		Profile: stubProfile{
			ID:          spotifyID,
			DisplayName: "Listener " + spotifyID,
			Email:       spotifyID + "@example.com",
		},
	})

	resp, err := http.Get(s.BaseURL + "/api/v1/auth/spotify/callback?code=" + code)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var cbResp dto.CallbackResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&cbResp))
	return cbResp
}

func (s *Suite) storedRefreshToken(spotifyID string) string {
	s.T().Helper()

	var token string
	err := s.Postgres.DB.QueryRow(
		"SELECT refresh_token FROM users WHERE spotify_id = $1", spotifyID,
	).Scan(&token)
	s.Require().NoError(err)
	return token
}

func (s *Suite) TestLogin_ReturnsAuthorizeURL() {
	resp, err := http.Get(s.BaseURL + "/api/v1/auth/spotify/login")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var urlResp dto.AuthURLResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&urlResp))
	s.Contains(urlResp.AuthURL, "client_id=test-client-id")
	s.Contains(urlResp.AuthURL, "response_type=code")
	s.Contains(urlResp.AuthURL, "scope=")
}

func (s *Suite) TestCallback_CreatesUser() {
	cbResp := s.grantLogin("code-1", "listener1")

	s.NotEmpty(cbResp.SessionToken)
	s.Equal("Bearer", cbResp.TokenType)
	s.NotZero(cbResp.ExpiresIn)
	s.Equal("listener1", cbResp.User.SpotifyID)
	s.Require().NotNil(cbResp.User.DisplayName)
	s.Equal("Listener listener1", *cbResp.User.DisplayName)
	s.NotEmpty(cbResp.User.ID)

	s.Equal("rt-listener1", s.storedRefreshToken("listener1"))
}

func (s *Suite) TestCallback_SecondLoginKeepsSingleUser() {
	first := s.grantLogin("code-1", "listener1")
	second := s.grantLogin("code-2", "listener1")

	s.Equal(first.User.ID, second.User.ID)

	var count int
	err := s.Postgres.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE spotify_id = $1", "listener1",
	).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestCallback_MissingCode() {
	resp, err := http.Get(s.BaseURL + "/api/v1/auth/spotify/callback")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestCallback_InvalidCodePassesThroughUpstreamStatus() {
	resp, err := http.Get(s.BaseURL + "/api/v1/auth/spotify/callback?code=bogus")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Spotify API error", errResp.Error)
}

func (s *Suite) TestRefreshAccessToken_Success() {
	s.grantLogin("code-1", "listener1")
	s.Spotify.AllowRefresh("rt-listener1", stubRefresh{AccessToken: "at-fresh"})

	body, _ := json.Marshal(dto.RefreshAccessTokenRequest{SpotifyID: "listener1"})
	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/spotify/refresh_access_token",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var tokenResp dto.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&tokenResp))
	s.Equal("at-fresh", tokenResp.AccessToken)
	s.Empty(tokenResp.RefreshToken)

	// No rotation: the stored refresh token is unchanged
	s.Equal("rt-listener1", s.storedRefreshToken("listener1"))
}

func (s *Suite) TestRefreshAccessToken_RotatesStoredToken() {
	s.grantLogin("code-1", "listener1")
	s.Spotify.AllowRefresh("rt-listener1", stubRefresh{
		AccessToken: "at-fresh",
		RotateTo:    "rt-rotated",
	})

	body, _ := json.Marshal(dto.RefreshAccessTokenRequest{SpotifyID: "listener1"})
	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/spotify/refresh_access_token",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("rt-rotated", s.storedRefreshToken("listener1"))
}

func (s *Suite) TestRefreshAccessToken_UnknownUser() {
	body, _ := json.Marshal(dto.RefreshAccessTokenRequest{SpotifyID: "nobody"})
	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/spotify/refresh_access_token",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestGetMe_Success() {
	cbResp := s.grantLogin("code-1", "listener1")

	req, _ := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+cbResp.SessionToken)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var userResp dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&userResp))
	s.Equal(cbResp.User.ID, userResp.ID)
	s.Equal("listener1", userResp.SpotifyID)
	s.NotNil(userResp.LastLoginAt)
}

func (s *Suite) TestGetMe_WithoutToken() {
	resp, err := http.Get(s.BaseURL + "/api/v1/users/me")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_WithGarbageToken() {
	req, _ := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-session-token")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
