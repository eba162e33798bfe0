package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
)

type voteService struct {
	repo ports.QuestionRepository
}

func NewVoteService(repo ports.QuestionRepository) ports.VoteService {
	return &voteService{
		repo: repo,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Question, error) {
	questionID, err := uuid.Parse(input.QuestionID)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	question, err := s.repo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	choiceID, err := uuid.Parse(input.ChoiceID)
	if err != nil {
		// Covers the "no choice submitted" form as well.
		return question, domain.ErrInvalidChoice
	}
	if _, ok := question.ChoiceByID(choiceID); !ok {
		return question, domain.ErrInvalidChoice
	}

	// The increment happens inside the storage layer so concurrent votes
	// on the same choice cannot lose updates.
	if err := s.repo.IncrementVotes(ctx, questionID, choiceID); err != nil {
		return question, err
	}

	return question, nil
}
