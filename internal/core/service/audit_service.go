package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/api/metrics"
	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events and
// keeps the auth counters current.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single auth event and updates metrics.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	outcome := "success"
	if !in.Success {
		outcome = "failure"
	}
	metrics.AuthEventsProcessedTotal.WithLabelValues(in.Action, outcome).Inc()

	event := &domain.AuthEvent{
		Email:     in.Email,
		Action:    in.Action,
		Success:   in.Success,
		Reason:    in.Reason,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("action", in.Action).
		Bool("success", in.Success).
		Msg("auth event recorded")

	return nil
}
