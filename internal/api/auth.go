package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"cricketmgr.dev/core/internal/core"
)

type userContextKey struct{}

// AuthRoutes handles GitHub/Codeberg OAuth login and API key management for
// the accounts that own careers.
type AuthRoutes struct {
	userRepo   core.UserRepository
	tokenRepo  core.OAuthTokenRepository
	apiKeyRepo core.APIKeyRepository

	githubConfig   *oauth2.Config
	codebergConfig *oauth2.Config
}

func newGithubConf() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GITHUB_REDIRECT_URL", "http://localhost:8080/v1/auth/github/callback"),
		Scopes:       []string{"user:email"},
		Endpoint:     github.Endpoint,
	}
}

func newCodebergConf() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     getEnv("CODEBERG_CLIENT_ID", ""),
		ClientSecret: getEnv("CODEBERG_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("CODEBERG_REDIRECT_URL", "http://localhost:8080/v1/auth/codeberg/callback"),
		Scopes:       []string{"read:user"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://codeberg.org/login/oauth/authorize",
			TokenURL: "https://codeberg.org/login/oauth/access_token",
		},
	}
}

func NewAuthRoutes(userRepo core.UserRepository, tokenRepo core.OAuthTokenRepository, apiKeyRepo core.APIKeyRepository) *AuthRoutes {
	return &AuthRoutes{
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		apiKeyRepo:     apiKeyRepo,
		githubConfig:   newGithubConf(),
		codebergConfig: newCodebergConf(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (r *AuthRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/auth/github", r.handleGitHubLogin)
	mux.HandleFunc("GET /v1/auth/github/callback", r.handleGitHubCallback)
	mux.HandleFunc("GET /v1/auth/codeberg", r.handleCodebergLogin)
	mux.HandleFunc("GET /v1/auth/codeberg/callback", r.handleCodebergCallback)
	mux.HandleFunc("POST /v1/auth/logout", r.handleLogout)
	mux.HandleFunc("GET /v1/auth/me", r.handleMe)
	mux.HandleFunc("POST /v1/auth/keys", r.handleCreateAPIKey)
	mux.HandleFunc("GET /v1/auth/keys", r.handleListAPIKeys)
	mux.HandleFunc("DELETE /v1/auth/keys/{id}", r.handleRevokeAPIKey)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// sessionCookieValue packs the two fields GetByUserID needs to verify a
// session: core.OAuthTokenRepository only looks tokens up by user, not by
// raw token value, so the cookie carries both.
func sessionCookieValue(userID core.UserID, accessToken string) string {
	return string(userID) + "." + accessToken
}

func parseSessionCookie(value string) (core.UserID, string, bool) {
	idx := strings.IndexByte(value, '.')
	if idx < 0 {
		return "", "", false
	}
	return core.UserID(value[:idx]), value[idx+1:], true
}

func (r *AuthRoutes) handleGitHubLogin(w http.ResponseWriter, req *http.Request) {
	state, err := generateState()
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to generate state: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})

	http.Redirect(w, req, r.githubConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (r *AuthRoutes) handleGitHubCallback(w http.ResponseWriter, req *http.Request) {
	state := req.URL.Query().Get("state")
	code := req.URL.Query().Get("code")

	cookie, err := req.Cookie("oauth_state")
	if err != nil || cookie.Value != state {
		writeInternalServerError(w, fmt.Errorf("invalid OAuth state"))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	token, err := r.githubConfig.Exchange(req.Context(), code)
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to exchange code: %w", err))
		return
	}

	oauthUser, err := r.getGitHubUser(req.Context(), token.AccessToken)
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to get user: %w", err))
		return
	}

	r.completeLogin(w, req, oauthUser, token)
}

func (r *AuthRoutes) handleCodebergLogin(w http.ResponseWriter, req *http.Request) {
	state, err := generateState()
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to generate state: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})

	http.Redirect(w, req, r.codebergConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (r *AuthRoutes) handleCodebergCallback(w http.ResponseWriter, req *http.Request) {
	state := req.URL.Query().Get("state")
	code := req.URL.Query().Get("code")

	cookie, err := req.Cookie("oauth_state")
	if err != nil || cookie.Value != state {
		writeInternalServerError(w, fmt.Errorf("invalid OAuth state"))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	token, err := r.codebergConfig.Exchange(req.Context(), code)
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to exchange code: %w", err))
		return
	}

	oauthUser, err := r.getCodebergUser(req.Context(), token.AccessToken)
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to get user: %w", err))
		return
	}

	r.completeLogin(w, req, oauthUser, token)
}

// completeLogin finds-or-creates the local user, records the OAuth token,
// and sets the session cookie. Shared by both provider callbacks.
func (r *AuthRoutes) completeLogin(w http.ResponseWriter, req *http.Request, oauthUser *OAuthUser, token *oauth2.Token) {
	ctx := req.Context()

	user, err := r.userRepo.GetByEmail(ctx, oauthUser.Email)
	if err != nil {
		name, avatar := oauthUser.Name, oauthUser.AvatarURL
		user = &core.User{
			ID:        core.UserID(fmt.Sprintf("user-%s", oauthUser.Email)),
			Email:     oauthUser.Email,
			Name:      &name,
			AvatarURL: &avatar,
			CreatedAt: time.Now(),
			IsActive:  true,
		}
		if err := r.userRepo.Create(ctx, user); err != nil {
			writeInternalServerError(w, fmt.Errorf("failed to create user: %w", err))
			return
		}
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := r.userRepo.Update(ctx, user); err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to update last login: %w", err))
		return
	}

	expiresAt := now.Add(24 * time.Hour)
	var refresh *string
	if token.RefreshToken != "" {
		refresh = &token.RefreshToken
	}
	oauthToken := &core.OAuthToken{
		ID:           fmt.Sprintf("tok-%d", now.UnixNano()),
		UserID:       user.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
	}
	if err := r.tokenRepo.Create(ctx, oauthToken); err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to create session: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    sessionCookieValue(user.ID, token.AccessToken),
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})

	http.Redirect(w, req, "/", http.StatusTemporaryRedirect)
}

func (r *AuthRoutes) handleLogout(w http.ResponseWriter, req *http.Request) {
	if cookie, err := req.Cookie("session_token"); err == nil {
		if userID, _, ok := parseSessionCookie(cookie.Value); ok {
			if token, err := r.tokenRepo.GetByUserID(req.Context(), userID); err == nil {
				r.tokenRepo.Delete(req.Context(), token.ID)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{Name: "session_token", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (r *AuthRoutes) handleMe(w http.ResponseWriter, req *http.Request) {
	user, ok := req.Context().Value(userContextKey{}).(*core.User)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (r *AuthRoutes) handleCreateAPIKey(w http.ResponseWriter, req *http.Request) {
	user, ok := req.Context().Value(userContextKey{}).(*core.User)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var input struct {
		Name      *string    `json:"name"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	secret, err := generateAPIKeySecret()
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to generate api key: %w", err))
		return
	}

	key := &core.APIKey{
		ID:        fmt.Sprintf("key-%d", time.Now().UnixNano()),
		UserID:    user.ID,
		KeyPrefix: secret,
		Name:      input.Name,
		CreatedAt: time.Now(),
		ExpiresAt: input.ExpiresAt,
		IsActive:  true,
	}
	if err := r.apiKeyRepo.Create(req.Context(), key); err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to create API key: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"api_key": key,
		"key":     secret,
		"warning": "This key will only be shown once. Please save it securely.",
	})
}

// generateAPIKeySecret mints a random bearer credential. It is stored
// directly as the key's prefix since core.APIKey carries no separate hash
// field to compare a hashed secret against.
func generateAPIKeySecret() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ck_" + base64.RawURLEncoding.EncodeToString(b), nil
}

func (r *AuthRoutes) handleListAPIKeys(w http.ResponseWriter, req *http.Request) {
	user, ok := req.Context().Value(userContextKey{}).(*core.User)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	keys, err := r.apiKeyRepo.ListByUser(req.Context(), user.ID)
	if err != nil {
		writeInternalServerError(w, fmt.Errorf("failed to list API keys: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (r *AuthRoutes) handleRevokeAPIKey(w http.ResponseWriter, req *http.Request) {
	_, ok := req.Context().Value(userContextKey{}).(*core.User)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	id := req.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing key ID")
		return
	}

	if err := r.apiKeyRepo.Revoke(req.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "API key revoked"})
}

// OAuthUser is the normalized profile fetched from whichever provider
// completed the handshake.
type OAuthUser struct {
	Email     string
	Name      string
	AvatarURL string
}

func (r *AuthRoutes) getGitHubUser(ctx context.Context, accessToken string) (*OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API error: %s", string(body))
	}

	var ghUser struct {
		Login     string  `json:"login"`
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		AvatarURL string  `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		return nil, err
	}

	email := ""
	if ghUser.Email != nil && *ghUser.Email != "" {
		email = *ghUser.Email
	} else if emails, err := r.getGitHubEmails(ctx, accessToken); err == nil {
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
		if email == "" && len(emails) > 0 {
			email = emails[0].Email
		}
	}
	if email == "" {
		return nil, fmt.Errorf("no email found for GitHub user")
	}

	name := ghUser.Login
	if ghUser.Name != nil && *ghUser.Name != "" {
		name = *ghUser.Name
	}

	return &OAuthUser{Email: email, Name: name, AvatarURL: ghUser.AvatarURL}, nil
}

func (r *AuthRoutes) getGitHubEmails(ctx context.Context, accessToken string) ([]struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://api.github.com/user/emails", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API error: %d", resp.StatusCode)
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *AuthRoutes) getCodebergUser(ctx context.Context, accessToken string) (*OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://codeberg.org/api/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Codeberg API error: %s", string(body))
	}

	var cbUser struct {
		Login     string  `json:"login"`
		FullName  *string `json:"full_name"`
		Email     string  `json:"email"`
		AvatarURL string  `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cbUser); err != nil {
		return nil, err
	}
	if cbUser.Email == "" {
		return nil, fmt.Errorf("no email found for Codeberg user")
	}

	name := cbUser.Login
	if cbUser.FullName != nil && *cbUser.FullName != "" {
		name = *cbUser.FullName
	}

	return &OAuthUser{Email: cbUser.Email, Name: name, AvatarURL: cbUser.AvatarURL}, nil
}

// AuthMiddleware resolves the session cookie or bearer API key into a
// core.User in the request context, rejecting the request otherwise.
func AuthMiddleware(userRepo core.UserRepository, tokenRepo core.OAuthTokenRepository, apiKeyRepo core.APIKeyRepository, debugMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if debugMode {
				next.ServeHTTP(w, r)
				return
			}
			if user := resolveUser(r, userRepo, tokenRepo, apiKeyRepo); user != nil {
				ctx := context.WithValue(r.Context(), userContextKey{}, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		})
	}
}

// OptionalAuthMiddleware attaches a core.User to the context when resolvable
// but never rejects the request.
func OptionalAuthMiddleware(userRepo core.UserRepository, tokenRepo core.OAuthTokenRepository, apiKeyRepo core.APIKeyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := resolveUser(r, userRepo, tokenRepo, apiKeyRepo); user != nil {
				ctx := context.WithValue(r.Context(), userContextKey{}, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveUser(r *http.Request, userRepo core.UserRepository, tokenRepo core.OAuthTokenRepository, apiKeyRepo core.APIKeyRepository) *core.User {
	ctx := r.Context()

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			credential := parts[1]
			if len(credential) >= 3 {
				if key, err := apiKeyRepo.GetByPrefix(ctx, credential); err == nil && key.IsActive &&
					subtle.ConstantTimeCompare([]byte(key.KeyPrefix), []byte(credential)) == 1 {
					if user, err := userRepo.GetByID(ctx, key.UserID); err == nil && user.IsActive {
						return user
					}
				}
			}
		}
	}

	if cookie, err := r.Cookie("session_token"); err == nil {
		if userID, accessToken, ok := parseSessionCookie(cookie.Value); ok {
			if token, err := tokenRepo.GetByUserID(ctx, userID); err == nil &&
				subtle.ConstantTimeCompare([]byte(token.AccessToken), []byte(accessToken)) == 1 &&
				time.Now().Before(token.ExpiresAt) {
				if user, err := userRepo.GetByID(ctx, userID); err == nil && user.IsActive {
					return user
				}
			}
		}
	}

	return nil
}
