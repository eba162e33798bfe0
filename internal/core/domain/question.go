package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentWindowDays is the single place the "published recently" threshold
// is configured.
const RecentWindowDays = 1

// RecentWindow is the duration a question counts as recently published.
const RecentWindow = RecentWindowDays * 24 * time.Hour

type Question struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Choices      []Choice  `json:"choices"`
	CreatedAt    time.Time `json:"created_at"`
}

type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	ChoiceText string    `json:"choice_text"`
	Votes      int64     `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// WasPublishedRecently reports whether the question was published within
// the recent window ending at now. The old boundary is exclusive: a
// question published exactly RecentWindow ago is not recent. Future
// publication dates are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.PubDate.After(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

// IsVisible reports whether the question may be shown to the public:
// published no later than now and owning at least one choice.
func (q Question) IsVisible(now time.Time) bool {
	return !q.PubDate.After(now) && len(q.Choices) > 0
}

// ChoiceByID returns the owned choice with the given id.
func (q Question) ChoiceByID(id uuid.UUID) (Choice, bool) {
	for _, c := range q.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}
