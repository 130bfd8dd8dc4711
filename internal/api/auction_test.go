package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestAuctionEndpoints(t *testing.T) {
	career := createTestCareer(t, "api-test-auction-user", "Auction Endpoint Career")
	seasonID := string(career.ID) + "-s1"
	startPath := "/v1/careers/" + string(career.ID) + "/seasons/" + seasonID + "/auction/start"

	t.Run("POST .../auction/start", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, startPath, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var auction core.Auction
		if err := json.NewDecoder(w.Body).Decode(&auction); err != nil {
			t.Fatalf("failed to decode auction: %v", err)
		}
		if auction.SeasonID != core.SeasonID(seasonID) {
			t.Errorf("expected season %s, got %s", seasonID, auction.SeasonID)
		}
	})

	t.Run("POST .../auction/start - rejected once already started", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, startPath, nil)
		req.SetPathValue("careerID", string(career.ID))
		req.SetPathValue("seasonID", seasonID)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 (already started), got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST .../auction/start - unknown career", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/careers/nonexistent/seasons/nonexistent/auction/start", nil)
		req.SetPathValue("careerID", "nonexistent")
		req.SetPathValue("seasonID", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
