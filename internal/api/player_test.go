package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPlayerEndpoints(t *testing.T) {
	career := createTestCareer(t, "api-test-player-user", "Player Endpoint Career")

	t.Run("GET /v1/careers/{careerID}/players", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/players", nil)
		req.SetPathValue("careerID", string(career.ID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp PaginatedResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Total == 0 {
			t.Error("expected a generated player pool")
		}
		if resp.Page != 1 {
			t.Errorf("expected page 1, got %d", resp.Page)
		}
	})

	t.Run("GET /v1/careers/{careerID}/players?role=Batsman", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/players?role=Batsman", nil)
		req.SetPathValue("careerID", string(career.ID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/careers/{careerID}/players?per_page=5", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/players?per_page=5", nil)
		req.SetPathValue("careerID", string(career.ID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp PaginatedResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.PerPage != 5 {
			t.Errorf("expected per_page 5, got %d", resp.PerPage)
		}
	})

	t.Run("GET /v1/careers/{careerID}/players/{id} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID)+"/players/nonexistent", nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
