package ports

import (
	"context"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

// QuestionRepository handles question persistence.
type QuestionRepository interface {
	Insert(ctx context.Context, q *domain.Question) (*domain.Question, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	List(ctx context.Context) ([]domain.Question, error)
	Delete(ctx context.Context, id string) error
}
