package acceptance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// stubProfile is a canned Spotify user profile served by the stub
type stubProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type stubGrant struct {
	AccessToken  string
	RefreshToken string
	Profile      stubProfile
}

type stubRefresh struct {
	AccessToken string
	// RotateTo, when non-empty, is returned as a new refresh token
	RotateTo string
}

// spotifyStub emulates the Spotify account service and Web API for
// acceptance tests. It serves the token endpoint, the profile endpoint and
// the analytics endpoints the application proxies.
type spotifyStub struct {
	mu       sync.Mutex
	server   *httptest.Server
	codes    map[string]stubGrant
	refresh  map[string]stubRefresh
	profiles map[string]stubProfile
}

func newSpotifyStub() *spotifyStub {
	s := &spotifyStub{
		codes:    make(map[string]stubGrant),
		refresh:  make(map[string]stubRefresh),
		profiles: make(map[string]stubProfile),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", s.handleToken)
	mux.HandleFunc("/v1/me", s.handleProfile)
	mux.HandleFunc("/v1/me/top/", s.handleAnalytics)
	mux.HandleFunc("/v1/me/playlists", s.handleAnalytics)
	mux.HandleFunc("/v1/me/player/recently-played", s.handleAnalytics)

	s.server = httptest.NewServer(mux)
	return s
}

func (s *spotifyStub) Close() {
	s.server.Close()
}

func (s *spotifyStub) AuthURL() string    { return s.server.URL + "/authorize" }
func (s *spotifyStub) TokenURL() string   { return s.server.URL + "/api/token" }
func (s *spotifyStub) APIBaseURL() string { return s.server.URL + "/v1" }

// GrantCode registers an authorization code that exchanges into the given
// tokens and profile
func (s *spotifyStub) GrantCode(code string, grant stubGrant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = grant
	s.profiles[grant.AccessToken] = grant.Profile
}

// AllowRefresh registers a refresh token the stub will accept. The issued
// access token is recognized by the Web API endpoints afterwards.
func (s *spotifyStub) AllowRefresh(refreshToken string, r stubRefresh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[refreshToken] = r
	if _, ok := s.profiles[r.AccessToken]; !ok {
		s.profiles[r.AccessToken] = stubProfile{}
	}
}

// Reset clears all registered grants
func (s *spotifyStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = make(map[string]stubGrant)
	s.refresh = make(map[string]stubRefresh)
	s.profiles = make(map[string]stubProfile)
}

func (s *spotifyStub) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		grant, ok := s.codes[r.PostForm.Get("code")]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token":  grant.AccessToken,
			"token_type":    "Bearer",
			"expires_in":    3600,
			"refresh_token": grant.RefreshToken,
		})
	case "refresh_token":
		ref, ok := s.refresh[r.PostForm.Get("refresh_token")]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		resp := map[string]interface{}{
			"access_token": ref.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		if ref.RotateTo != "" {
			resp["refresh_token"] = ref.RotateTo
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (s *spotifyStub) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[bearerToken(r)]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleAnalytics serves a minimal paging object for any analytics endpoint
// as long as the caller presents a known access token
func (s *spotifyStub) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, known := s.profiles[bearerToken(r)]
	s.mu.Unlock()

	if !known {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": []interface{}{},
		"total": 0,
		"limit": r.URL.Query().Get("limit"),
	})
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
