package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/polls/site/internal/core/domain"
)

// QuestionRepository is the narrow storage surface the polls logic needs:
// raw lookup, visibility-filtered listing and the atomic vote increment.
type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	// GetByID returns the question with its choices in creation order,
	// regardless of visibility, or domain.ErrQuestionNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	// ListPublished returns questions with pub_date <= now owning at least
	// one choice, newest pub_date first, creation order breaking ties.
	ListPublished(ctx context.Context, now time.Time) ([]*domain.Question, error)
	// IncrementVotes adds exactly 1 to the stored vote counter of the
	// choice owned by the given question, as a single storage-level update.
	// Returns domain.ErrChoiceNotFound when no such choice exists.
	IncrementVotes(ctx context.Context, questionID, choiceID uuid.UUID) error
}

type CreateQuestionInput struct {
	QuestionText string
	PubDate      *time.Time
	Choices      []string
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	// ListPublished returns the publicly visible questions, newest first.
	ListPublished(ctx context.Context) ([]*domain.Question, error)
	// GetPublished returns a visible question by id. Missing, future and
	// choiceless questions are all reported as domain.ErrQuestionNotFound.
	GetPublished(ctx context.Context, id string) (*domain.Question, error)
}
