package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMatchEndpoints(t *testing.T) {
	career := createTestCareer(t, "api-test-match-user", "Match Endpoint Career")

	t.Run("POST .../fixtures/{fixtureID}/toss - unknown fixture", func(t *testing.T) {
		path := "/v1/careers/" + string(career.ID) + "/fixtures/nonexistent/toss"
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("fixtureID", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET .../fixtures/{fixtureID}/result - no match played yet", func(t *testing.T) {
		path := "/v1/careers/" + string(career.ID) + "/fixtures/nonexistent/result"
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("fixtureID", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET .../fixtures/{fixtureID}/scorecard - no session in progress", func(t *testing.T) {
		path := "/v1/careers/" + string(career.ID) + "/fixtures/nonexistent/scorecard"
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("fixtureID", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404 for a fixture with no live session, got %d: %s", w.Code, w.Body.String())
		}
	})
}
