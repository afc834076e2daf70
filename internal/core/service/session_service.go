package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

// SessionService implements registration, login and token refresh.
type SessionService struct {
	store   ports.IdentityStore
	codec   ports.TokenCodec
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewSessionService(
	store ports.IdentityStore,
	codec ports.TokenCodec,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		store:   store,
		codec:   codec,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates a new user with the default role and logs them in.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*ports.CredentialBundle, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}

	// The insert below is race-safe (unique index on email); this lookup only
	// exists to answer the common case without burning a bcrypt hash.
	if _, err := s.store.FindByEmail(ctx, email, domain.Everyone...); err == nil {
		s.record(email, domain.AuditRegister, false, "email exists")
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			s.record(email, domain.AuditRegister, false, "email exists")
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	s.record(email, domain.AuditRegister, true, "")
	s.log.Info().Str("email", created.Email).Msg("user registered")

	return s.bundle(created)
}

// Login verifies the email/password pair and issues a fresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.CredentialBundle, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	throttled, err := s.limiter.TooMany(ctx, email)
	if err != nil {
		// Fail open: a throttle-store outage must not lock everyone out.
		s.log.Warn().Err(err).Msg("login limiter unavailable")
	} else if throttled {
		s.record(email, domain.AuditLogin, false, "throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.store.FindByEmail(ctx, email, domain.Everyone...)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.loginFailed(ctx, email, "unknown email")
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.loginFailed(ctx, email, "wrong password")
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}

	s.record(email, domain.AuditLogin, true, "")
	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("login succeeded")

	return s.bundle(user)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := s.codec.Decode(refreshToken, ports.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	// Re-resolve so a removed identity cannot keep minting access tokens,
	// and so the embedded role claim tracks the current role.
	user, err := s.store.FindByEmail(ctx, payload.Identity, domain.Everyone...)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(payload.Identity, domain.AuditRefresh, false, "identity removed")
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("refresh: lookup: %w", err)
	}

	access, err := s.codec.IssueAccess(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("refresh: issue access token: %w", err)
	}

	s.record(user.Email, domain.AuditRefresh, true, "")
	return access, nil
}

func (s *SessionService) loginFailed(ctx context.Context, email, reason string) error {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
	s.record(email, domain.AuditLogin, false, reason)
	s.log.Info().Str("email", email).Str("reason", reason).Msg("login rejected")
	return domain.ErrInvalidCredentials
}

// bundle issues a fresh token pair for the user.
func (s *SessionService) bundle(user *domain.User) (*ports.CredentialBundle, error) {
	access, err := s.codec.IssueAccess(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &ports.CredentialBundle{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
	}, nil
}

func (s *SessionService) record(email, action string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuthEventInput{
		Email:     email,
		Action:    action,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
