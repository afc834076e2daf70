package ports

import "time"

// TokenKind distinguishes the two credentials the codec can mint.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPayload is the decoded content of a verified token.
type TokenPayload struct {
	Identity  string // user email (subject)
	Role      string // role claim; empty on refresh tokens
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed tokens. Implementations are pure:
// deterministic given the signing secret and clock, with no side effects.
type TokenCodec interface {
	// IssueAccess mints a short-lived access token embedding the role claim.
	IssueAccess(identity, role string) (string, error)

	// IssueRefresh mints a longer-lived refresh token with no role claim.
	IssueRefresh(identity string) (string, error)

	// Decode verifies signature, expiry and kind. Failure modes:
	// domain.ErrInvalidToken, domain.ErrTokenExpired, domain.ErrWrongTokenKind.
	Decode(token string, kind TokenKind) (*TokenPayload, error)
}
