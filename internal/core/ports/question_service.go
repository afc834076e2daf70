package ports

import (
	"context"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

// CreateQuestionInput is the DTO passed from the transport layer to QuestionService.
type CreateQuestionInput struct {
	Author string // email of the authenticated submitter, empty when anonymous
	Title  string
	Body   string
}

// QuestionService handles the questions resource.
type QuestionService interface {
	Create(ctx context.Context, in CreateQuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	List(ctx context.Context) ([]domain.Question, error)
	Delete(ctx context.Context, id string) error
}
