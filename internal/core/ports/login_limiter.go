package ports

import "context"

// LoginLimiter throttles repeated failed logins per identity.
type LoginLimiter interface {
	// TooMany reports whether the identity has exhausted its failure budget.
	TooMany(ctx context.Context, email string) (bool, error)

	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, email string) error

	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}
