package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestSeasonEndpoints(t *testing.T) {
	career := createTestCareer(t, "api-test-season-user", "Season Endpoint Career")
	seasonID := string(career.ID) + "-s1"

	t.Run("GET /v1/seasons/{id}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/"+seasonID, nil)
		req.SetPathValue("id", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var season core.Season
		if err := json.NewDecoder(w.Body).Decode(&season); err != nil {
			t.Fatalf("failed to decode season: %v", err)
		}
		if season.CareerID != career.ID {
			t.Errorf("expected career %s, got %s", career.ID, season.CareerID)
		}
		if season.Phase != core.SeasonNotStarted {
			t.Errorf("expected phase %s, got %s", core.SeasonNotStarted, season.Phase)
		}
	})

	t.Run("GET /v1/seasons/{id} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/nonexistent", nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/seasons/{seasonID}/fixtures before generation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/"+seasonID+"/fixtures", nil)
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var fixtures []core.Fixture
		if err := json.NewDecoder(w.Body).Decode(&fixtures); err != nil {
			t.Fatalf("failed to decode fixtures: %v", err)
		}
		if len(fixtures) != 0 {
			t.Errorf("expected no fixtures before generation, got %d", len(fixtures))
		}
	})

	t.Run("GET /v1/seasons/{seasonID}/fixtures?q=qualifier 1 2025", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/"+seasonID+"/fixtures?q=qualifier+1+2025", nil)
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/seasons/{seasonID}/standings before any matches", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/"+seasonID+"/standings", nil)
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST .../fixtures/generate - rejected before auction completes", func(t *testing.T) {
		path := "/v1/careers/" + string(career.ID) + "/seasons/" + seasonID + "/fixtures/generate"
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 (auction not yet complete), got %d: %s", w.Code, w.Body.String())
		}
	})
}
