package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
)

type record struct {
	question domain.Question
	seq      int
}

// questionRepository keeps everything in a mutex-guarded map. It exists so
// the polls logic and handlers can be tested without a database; the
// postgres adapter is the production implementation of the same port.
type questionRepository struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*record
	nextSeq   int
}

func NewQuestionRepository() ports.QuestionRepository {
	return &questionRepository{
		questions: make(map[uuid.UUID]*record),
	}
}

func (r *questionRepository) Save(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.questions[question.ID] = &record{
		question: copyQuestion(question),
		seq:      r.nextSeq,
	}
	r.nextSeq++
	return nil
}

func (r *questionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	q := copyQuestion(&rec.question)
	return &q, nil
}

func (r *questionRepository) ListPublished(_ context.Context, now time.Time) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var recs []*record
	for _, rec := range r.questions {
		if rec.question.IsVisible(now) {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.question.PubDate.Equal(b.question.PubDate) {
			return a.question.PubDate.After(b.question.PubDate)
		}
		return a.seq < b.seq
	})

	questions := make([]*domain.Question, 0, len(recs))
	for _, rec := range recs {
		q := copyQuestion(&rec.question)
		questions = append(questions, &q)
	}
	return questions, nil
}

func (r *questionRepository) IncrementVotes(_ context.Context, questionID, choiceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A missing question reports the same way as a missing choice: no
	// choice owned by that question matched.
	rec, ok := r.questions[questionID]
	if !ok {
		return domain.ErrChoiceNotFound
	}
	for i := range rec.question.Choices {
		if rec.question.Choices[i].ID == choiceID {
			rec.question.Choices[i].Votes++
			return nil
		}
	}
	return domain.ErrChoiceNotFound
}

// copyQuestion deep-copies so callers never share choice slices with the
// stored state.
func copyQuestion(q *domain.Question) domain.Question {
	out := *q
	out.Choices = make([]domain.Choice, len(q.Choices))
	copy(out.Choices, q.Choices)
	return out
}
