package ports

import "context"

// CredentialBundle is the payload returned on successful authentication.
// It is never persisted server-side.
type CredentialBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// SessionService orchestrates the identity lifecycle flows.
type SessionService interface {
	// Register creates a new least-privileged user and logs them in.
	Register(ctx context.Context, name, email, password string) (*CredentialBundle, error)

	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (*CredentialBundle, error)

	// Refresh exchanges a valid refresh token for a new access token.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
