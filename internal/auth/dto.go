// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyMagicLinkRequest struct {
	Token string `json:"token" validate:"required,min=16,max=256"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type MagicLinkSentResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User      UserResponse  `json:"user"`
	Tokens    TokenResponse `json:"tokens"`
	IsNewUser bool          `json:"is_new_user"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}
