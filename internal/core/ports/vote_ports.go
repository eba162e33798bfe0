package ports

import (
	"context"

	"github.com/polls/site/internal/core/domain"
)

type VoteInput struct {
	QuestionID string
	ChoiceID   string
}

type VoteService interface {
	// Vote increments the chosen choice's counter by one. It returns
	// domain.ErrQuestionNotFound when the question does not exist and
	// domain.ErrInvalidChoice when no choice was submitted or the submitted
	// choice does not belong to the question; in both failure cases no
	// state is mutated. On success the question is returned so the caller
	// can redirect to its results.
	Vote(ctx context.Context, input VoteInput) (*domain.Question, error)
}
