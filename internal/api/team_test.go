package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestTeamEndpoints(t *testing.T) {
	career := createTestCareer(t, "api-test-team-user", "Team Endpoint Career")

	t.Run("GET /v1/careers/{careerID}/teams", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/teams", nil)
		req.SetPathValue("careerID", string(career.ID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var teams []core.Team
		if err := json.NewDecoder(w.Body).Decode(&teams); err != nil {
			t.Fatalf("failed to decode teams: %v", err)
		}
		if len(teams) != 8 {
			t.Errorf("expected 8 franchises, got %d", len(teams))
		}

		var sawUserTeam bool
		for _, team := range teams {
			if team.ID == career.UserTeamID {
				sawUserTeam = true
			}
		}
		if !sawUserTeam {
			t.Errorf("expected user team %s among the 8 franchises", career.UserTeamID)
		}
	})

	t.Run("GET /v1/careers/{careerID}/teams/{id}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/teams/"+string(career.UserTeamID), nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("id", string(career.UserTeamID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var team core.Team
		if err := json.NewDecoder(w.Body).Decode(&team); err != nil {
			t.Fatalf("failed to decode team: %v", err)
		}
		if !team.IsUserTeam {
			t.Error("expected IsUserTeam to be true for the career's assigned team")
		}
	})

	t.Run("GET /v1/careers/{careerID}/teams/{id} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/teams/nonexistent", nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
