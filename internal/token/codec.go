// Package token implements the signed-token codec: HS256 JWTs carrying an
// identity, an optional role claim, and a kind claim separating access
// tokens from refresh tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// authClaims is the wire shape of both token kinds.
type authClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
	Kind string `json:"kind"`
}

// Codec issues and verifies HS256-signed tokens.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec. Non-positive TTLs fall back to defaults.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess mints a short-lived access token embedding the role claim.
func (c *Codec) IssueAccess(identity, role string) (string, error) {
	return c.sign(identity, role, ports.TokenKindAccess, c.accessTTL)
}

// IssueRefresh mints a refresh token. It carries no role claim so a stale
// role can never be replayed through the refresh path.
func (c *Codec) IssueRefresh(identity string) (string, error) {
	return c.sign(identity, "", ports.TokenKindRefresh, c.refreshTTL)
}

func (c *Codec) sign(identity, role string, kind ports.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Kind: string(kind),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies signature, expiry and kind, and returns the payload.
func (c *Codec) Decode(tokenString string, kind ports.TokenKind) (*ports.TokenPayload, error) {
	claims := &authClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.Kind != string(kind) {
		return nil, domain.ErrWrongTokenKind
	}

	payload := &ports.TokenPayload{
		Identity: claims.Subject,
		Role:     claims.Role,
		Kind:     kind,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}
