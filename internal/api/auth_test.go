package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthEndpoints(t *testing.T) {
	t.Run("GET /v1/auth/github redirects with a state cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/github", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusTemporaryRedirect {
			t.Errorf("expected status 307, got %d", w.Code)
		}

		var sawStateCookie bool
		for _, c := range w.Result().Cookies() {
			if c.Name == "oauth_state" && c.Value != "" {
				sawStateCookie = true
			}
		}
		if !sawStateCookie {
			t.Error("expected an oauth_state cookie to be set")
		}
	})

	t.Run("GET /v1/auth/codeberg redirects with a state cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/codeberg", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusTemporaryRedirect {
			t.Errorf("expected status 307, got %d", w.Code)
		}
	})

	t.Run("GET /v1/auth/me - no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST /v1/auth/logout - no session is a no-op", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp map[string]string
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["message"] != "logged out" {
			t.Errorf("expected logged-out message, got %q", resp["message"])
		}
	})

	t.Run("POST /v1/auth/keys - no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/keys", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}
