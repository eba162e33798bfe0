package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
)

type questionService struct {
	repo ports.QuestionRepository
	now  func() time.Time
}

// NewQuestionService builds the question service. now may be nil, in which
// case time.Now is used; tests inject a fixed clock.
func NewQuestionService(repo ports.QuestionRepository, now func() time.Time) ports.QuestionService {
	if now == nil {
		now = time.Now
	}
	return &questionService{
		repo: repo,
		now:  now,
	}
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	if input.QuestionText == "" {
		return nil, fmt.Errorf("%w: question text is required", domain.ErrValidation)
	}

	questionID := uuid.New()
	now := s.now()

	pubDate := now
	if input.PubDate != nil {
		pubDate = *input.PubDate
	}

	question := &domain.Question{
		ID:           questionID,
		QuestionText: input.QuestionText,
		PubDate:      pubDate,
		CreatedAt:    now,
	}

	for _, choiceText := range input.Choices {
		if choiceText == "" {
			continue
		}
		question.Choices = append(question.Choices, domain.Choice{
			ID:         uuid.New(),
			QuestionID: questionID,
			ChoiceText: choiceText,
			CreatedAt:  now,
		})
	}

	if err := s.repo.Save(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) ListPublished(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.ListPublished(ctx, s.now())
}

func (s *questionService) GetPublished(ctx context.Context, id string) (*domain.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	question, err := s.repo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// Hidden and missing questions are indistinguishable to callers.
	if !question.IsVisible(s.now()) {
		return nil, domain.ErrQuestionNotFound
	}

	return question, nil
}
