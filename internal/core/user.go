package core

import "time"

// User is an authenticated account that owns up to MaxCareers careers.
// @Description An authenticated user account
type User struct {
	ID          UserID     `json:"id"`
	Email       string     `json:"email"`
	Name        *string    `json:"name,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// APIKey is a token for programmatic access, issued outside the core engines.
type APIKey struct {
	ID         string     `json:"id"`
	UserID     UserID     `json:"user_id"`
	KeyPrefix  string     `json:"key_prefix"`
	Name       *string    `json:"name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// OAuthToken is an OAuth2 token used by the external collaborator auth layer.
type OAuthToken struct {
	ID           string    `json:"id"`
	UserID       UserID    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken *string   `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// APIUsage is a single API request, retained for rate-limit/usage tracking.
type APIUsage struct {
	ID             int64     `json:"id"`
	UserID         *UserID   `json:"user_id,omitempty"`
	APIKeyID       *string   `json:"api_key_id,omitempty"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMs *int      `json:"response_time_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
