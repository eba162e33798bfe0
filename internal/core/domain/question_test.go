package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWasPublishedRecently(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{
			name:    "future question is not recent",
			pubDate: now.Add(30 * 24 * time.Hour),
			want:    false,
		},
		{
			name:    "question older than one day is not recent",
			pubDate: now.Add(-RecentWindow - time.Second),
			want:    false,
		},
		{
			name:    "question exactly one day old is not recent",
			pubDate: now.Add(-RecentWindow),
			want:    false,
		},
		{
			name:    "question just inside the window is recent",
			pubDate: now.Add(-RecentWindow + time.Second),
			want:    true,
		},
		{
			name:    "question published at this instant is recent",
			pubDate: now,
			want:    true,
		},
		{
			name:    "question published 23:59:59 ago is recent",
			pubDate: now.Add(-(23*time.Hour + 59*time.Minute + 59*time.Second)),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{PubDate: tt.pubDate}
			assert.Equal(t, tt.want, q.WasPublishedRecently(now))
		})
	}
}

func TestIsVisible(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	choice := Choice{ChoiceText: "The only answer"}

	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{
			name: "past question with a choice is visible",
			q:    Question{PubDate: now.Add(-time.Hour), Choices: []Choice{choice}},
			want: true,
		},
		{
			name: "question published right now is visible",
			q:    Question{PubDate: now, Choices: []Choice{choice}},
			want: true,
		},
		{
			name: "future question is not visible even with choices",
			q:    Question{PubDate: now.Add(time.Hour), Choices: []Choice{choice}},
			want: false,
		},
		{
			name: "past question without choices is not visible",
			q:    Question{PubDate: now.Add(-time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.IsVisible(now))
		})
	}
}
