package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func createTestCareer(t *testing.T, userID, name string) core.Career {
	t.Helper()

	body, _ := json.Marshal(createCareerRequest{Name: name, UserTeamIdx: -1})
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/careers", bytes.NewReader(body))
	req.SetPathValue("userID", userID)
	w := httptest.NewRecorder()

	testServer.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var career core.Career
	if err := json.NewDecoder(w.Body).Decode(&career); err != nil {
		t.Fatalf("failed to decode career: %v", err)
	}
	return career
}

func TestCareerEndpoints(t *testing.T) {
	userID := "api-test-user-1"

	t.Run("POST /v1/users/{userID}/careers", func(t *testing.T) {
		career := createTestCareer(t, userID, "API Test Career")

		if career.Name != "API Test Career" {
			t.Errorf("expected name %q, got %q", "API Test Career", career.Name)
		}
		if career.UserTeamID == "" {
			t.Error("expected a user team to be assigned")
		}
		if career.SeasonNumber != 1 {
			t.Errorf("expected season 1, got %d", career.SeasonNumber)
		}
	})

	t.Run("POST /v1/users/{userID}/careers - missing name", func(t *testing.T) {
		body, _ := json.Marshal(createCareerRequest{Name: ""})
		req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/careers", bytes.NewReader(body))
		req.SetPathValue("userID", userID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("GET /v1/careers/{id}", func(t *testing.T) {
		career := createTestCareer(t, userID, "Lookup Target")

		req := httptest.NewRequest(http.MethodGet, "/v1/careers/"+string(career.ID), nil)
		req.SetPathValue("id", string(career.ID))
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var got core.Career
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode career: %v", err)
		}
		if got.ID != career.ID {
			t.Errorf("expected career %s, got %s", career.ID, got.ID)
		}
	})

	t.Run("GET /v1/careers/{id} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/careers/does-not-exist", nil)
		req.SetPathValue("id", "does-not-exist")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/users/{userID}/careers", func(t *testing.T) {
		userID := "api-test-user-2"
		createTestCareer(t, userID, "First Career")

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/careers", nil)
		req.SetPathValue("userID", userID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var careers []core.Career
		if err := json.NewDecoder(w.Body).Decode(&careers); err != nil {
			t.Fatalf("failed to decode careers: %v", err)
		}
		if len(careers) != 1 {
			t.Errorf("expected 1 career, got %d", len(careers))
		}
	})

	t.Run("POST /v1/users/{userID}/careers - rejects over per-user cap", func(t *testing.T) {
		userID := "api-test-user-3"

		// default MaxCareersPerUser is 3; the third call above should succeed
		// and the next should be rejected with 409.
		for i := 0; i < 3; i++ {
			createTestCareer(t, userID, fmt.Sprintf("Career %d", i))
		}

		body, _ := json.Marshal(createCareerRequest{Name: "One Too Many", UserTeamIdx: -1})
		req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/careers", bytes.NewReader(body))
		req.SetPathValue("userID", userID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}
