package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/api/metrics"
	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

// QuestionService implements the questions resource on top of the repository.
type QuestionService struct {
	repo ports.QuestionRepository
	log  zerolog.Logger
}

func NewQuestionService(repo ports.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{repo: repo, log: log}
}

func (s *QuestionService) Create(ctx context.Context, in ports.CreateQuestionInput) (*domain.Question, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if body == "" {
		missing = append(missing, "body")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}

	question := &domain.Question{
		Author:    strings.ToLower(strings.TrimSpace(in.Author)),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	metrics.QuestionsCreatedTotal.Inc()
	s.log.Info().Str("question_id", created.ID).Str("author", created.Author).Msg("question created")
	return created, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	return s.repo.List(ctx)
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("question_id", id).Msg("question deleted")
	return nil
}
