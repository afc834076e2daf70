package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

type stubQuestionRepo struct {
	questions map[string]*domain.Question
	nextID    int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) Insert(_ context.Context, q *domain.Question) (*domain.Question, error) {
	r.nextID++
	stored := *q
	stored.ID = fmt.Sprintf("q-%d", r.nextID)
	r.questions[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuestionRepo) List(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

func TestQuestionService_Create(t *testing.T) {
	repo := newStubQuestionRepo()
	svc := NewQuestionService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateQuestionInput{
		Author: " Ana@X.com ",
		Title:  "  How do goroutines leak?  ",
		Body:   "Details inside.",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an assigned ID")
	}
	if created.Author != "ana@x.com" {
		t.Fatalf("author not normalized, got %q", created.Author)
	}
	if created.Title != "How do goroutines leak?" {
		t.Fatalf("title not trimmed, got %q", created.Title)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestQuestionService_Create_AnonymousAuthor(t *testing.T) {
	repo := newStubQuestionRepo()
	svc := NewQuestionService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateQuestionInput{
		Title: "Untitled corner case",
		Body:  "No author attached.",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Author != "" {
		t.Fatalf("expected empty author, got %q", created.Author)
	}
}

func TestQuestionService_Create_MissingFields(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateQuestionInput{
		Author: "ana@x.com",
		Title:  "   ",
		Body:   "",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Missing) != 2 || ve.Missing[0] != "title" || ve.Missing[1] != "body" {
		t.Fatalf("unexpected missing fields: %v", ve.Missing)
	}
}

func TestQuestionService_GetAndDelete(t *testing.T) {
	repo := newStubQuestionRepo()
	svc := NewQuestionService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateQuestionInput{
		Author: "ana@x.com",
		Title:  "Keep or delete?",
		Body:   "Soon gone.",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != created.Title {
		t.Fatalf("unexpected question: %+v", got)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound after delete, got %v", err)
	}
}

func TestQuestionService_DeleteUnknown(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}
