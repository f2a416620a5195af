package acceptance

import (
	"encoding/json"
	"net/http"
)

func (s *Suite) TestHealthEndpoint() {
	resp, err := http.Get(s.BaseURL + "/health")
	s.Require().NoError(err, "Failed to make request")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode, "Expected status 200")

	var body map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("pass", body["status"])
}

func (s *Suite) TestMetricsEndpoint() {
	resp, err := http.Get(s.BaseURL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}
