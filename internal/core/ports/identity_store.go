package ports

import (
	"context"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

// IdentityStore defines the interface for user persistence and resolution.
type IdentityStore interface {
	// FindByEmail resolves a user by email, restricted to the given role set.
	// Returns domain.ErrUserNotFound when no user in the set matches.
	FindByEmail(ctx context.Context, email string, roles ...string) (*domain.User, error)

	// Create persists a new user. Returns domain.ErrEmailExists when the
	// email is already taken; the check is atomic with the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
