package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
	"github.com/questionsapp/questions-api/internal/token"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubIdentityStore struct {
	users map[string]*domain.User
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubIdentityStore) FindByEmail(_ context.Context, email string, roles ...string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if len(roles) > 0 {
		match := false
		for _, role := range roles {
			if u.Role == role {
				match = true
				break
			}
		}
		if !match {
			return nil, domain.ErrUserNotFound
		}
	}
	return cloneUser(u), nil
}

func (r *stubIdentityStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	created := cloneUser(user)
	created.ID = user.Email
	r.users[created.Email] = cloneUser(created)
	return cloneUser(created), nil
}

type stubLimiter struct {
	throttled bool
	failures  int
	resets    int
}

func (l *stubLimiter) TooMany(_ context.Context, _ string) (bool, error) { return l.throttled, nil }
func (l *stubLimiter) RecordFailure(_ context.Context, _ string) error   { l.failures++; return nil }
func (l *stubLimiter) Reset(_ context.Context, _ string) error           { l.resets++; return nil }

type recordingAudit struct {
	events []ports.AuthEventInput
}

func (a *recordingAudit) Record(e ports.AuthEventInput) { a.events = append(a.events, e) }

func newTestService() (*SessionService, *stubIdentityStore, *stubLimiter, *recordingAudit, ports.TokenCodec) {
	store := newStubIdentityStore()
	limiter := &stubLimiter{}
	audit := &recordingAudit{}
	codec := token.NewCodec("secret", time.Hour, 24*time.Hour)
	svc := NewSessionService(store, codec, limiter, audit, zerolog.Nop())
	return svc, store, limiter, audit, codec
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestSessionService_Register_Success(t *testing.T) {
	svc, store, _, _, codec := newTestService()

	bundle, err := svc.Register(context.Background(), "Ana", "ANA@x.com", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if bundle.Email != "ana@x.com" {
		t.Fatalf("expected normalized email, got %q", bundle.Email)
	}
	if bundle.Name != "Ana" || bundle.Role != domain.RoleUser {
		t.Fatalf("unexpected bundle: %+v", bundle)
	}
	if bundle.AccessToken == "" || bundle.RefreshToken == "" {
		t.Fatalf("expected both tokens in bundle")
	}

	stored := store.users["ana@x.com"]
	if stored == nil {
		t.Fatalf("user not persisted under normalized email")
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	payload, err := codec.Decode(bundle.AccessToken, ports.TokenKindAccess)
	if err != nil {
		t.Fatalf("access token not decodable: %v", err)
	}
	if payload.Identity != "ana@x.com" || payload.Role != domain.RoleUser {
		t.Fatalf("unexpected token payload: %+v", payload)
	}
}

func TestSessionService_Register_MissingFields(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "  ", "ana@x.com", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Missing) != 2 || ve.Missing[0] != "name" || ve.Missing[1] != "password" {
		t.Fatalf("unexpected missing fields: %v", ve.Missing)
	}
}

func TestSessionService_Register_DuplicateAnyCasing(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Ana Again", "ANA@X.COM", "other"); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestSessionService_Login_Success(t *testing.T) {
	svc, store, limiter, _, codec := newTestService()

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// Promote so the claim has to reflect the stored role, not the default.
	store.users["ana@x.com"].Role = domain.RoleAdmin

	bundle, err := svc.Login(context.Background(), "Ana@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if bundle.Role != domain.RoleAdmin {
		t.Fatalf("expected stored role in bundle, got %q", bundle.Role)
	}

	payload, err := codec.Decode(bundle.AccessToken, ports.TokenKindAccess)
	if err != nil {
		t.Fatalf("access token not decodable: %v", err)
	}
	if payload.Role != domain.RoleAdmin {
		t.Fatalf("claim role %q does not match stored role", payload.Role)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset on success, got %d", limiter.resets)
	}
}

func TestSessionService_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	svc, _, limiter, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, errWrong := svc.Login(context.Background(), "ana@x.com", "wrong")
	_, errGhost := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(errWrong, domain.ErrInvalidCredentials) || !errors.Is(errGhost, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", errWrong, errGhost)
	}
	if limiter.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", limiter.failures)
	}
}

func TestSessionService_Login_Throttled(t *testing.T) {
	svc, _, limiter, _, _ := newTestService()
	limiter.throttled = true

	if _, err := svc.Login(context.Background(), "ana@x.com", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestSessionService_Refresh_Success(t *testing.T) {
	svc, _, _, _, codec := newTestService()

	bundle, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), bundle.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	payload, err := codec.Decode(access, ports.TokenKindAccess)
	if err != nil {
		t.Fatalf("refreshed token not decodable as access: %v", err)
	}
	if payload.Identity != "ana@x.com" {
		t.Fatalf("unexpected identity in refreshed token: %q", payload.Identity)
	}
}

func TestSessionService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	bundle, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), bundle.AccessToken); !errors.Is(err, domain.ErrWrongTokenKind) {
		t.Fatalf("expected ErrWrongTokenKind, got %v", err)
	}
}

func TestSessionService_Refresh_IdentityRemoved(t *testing.T) {
	svc, store, _, _, _ := newTestService()

	bundle, err := svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	delete(store.users, "ana@x.com")

	if _, err := svc.Refresh(context.Background(), bundle.RefreshToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSessionService_Refresh_Garbage(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Audit trail
// ---------------------------------------------------------------------------

func TestSessionService_AuditEvents(t *testing.T) {
	svc, _, _, audit, _ := newTestService()

	_, _ = svc.Register(context.Background(), "Ana", "ana@x.com", "s3cret")
	_, _ = svc.Login(context.Background(), "ana@x.com", "wrong")

	if len(audit.events) != 2 {
		t.Fatalf("expected 2 audit events, got %d", len(audit.events))
	}
	if audit.events[0].Action != domain.AuditRegister || !audit.events[0].Success {
		t.Fatalf("unexpected first event: %+v", audit.events[0])
	}
	if audit.events[1].Action != domain.AuditLogin || audit.events[1].Success {
		t.Fatalf("unexpected second event: %+v", audit.events[1])
	}
	if audit.events[1].Reason != "wrong password" {
		t.Fatalf("unexpected failure reason: %q", audit.events[1].Reason)
	}
}
