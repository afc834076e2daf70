package ports

import (
	"context"
	"time"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

// AuthEventInput is the DTO handed to the audit pipeline.
type AuthEventInput struct {
	Email     string
	Action    string
	Success   bool
	Reason    string
	Timestamp time.Time
}

// AuditService processes auth events dequeued by the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}

// AuditRepository persists auth events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditRecorder is the fire-and-forget producer side of the pipeline.
// Recording never blocks the request path beyond queue capacity.
type AuditRecorder interface {
	Record(event AuthEventInput)
}
