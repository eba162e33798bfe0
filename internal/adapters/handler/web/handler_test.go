package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polls/site/internal/adapters/repository/memory"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
	"github.com/polls/site/internal/core/services"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	repo    ports.QuestionRepository
	handler http.Handler
}

func newTestApp() *testApp {
	repo := memory.NewQuestionRepository()
	clock := func() time.Time { return testNow }

	questionSvc := services.NewQuestionService(repo, clock)
	voteSvc := services.NewVoteService(repo)

	handler := NewHandler(NewQuestionHandler(questionSvc), NewVoteHandler(voteSvc))
	return &testApp{repo: repo, handler: handler}
}

func (app *testApp) createQuestion(t *testing.T, text string, days int, choices ...string) *domain.Question {
	t.Helper()

	id := uuid.New()
	q := &domain.Question{
		ID:           id,
		QuestionText: text,
		PubDate:      testNow.AddDate(0, 0, days),
		CreatedAt:    testNow,
	}
	for _, choiceText := range choices {
		q.Choices = append(q.Choices, domain.Choice{
			ID:         uuid.New(),
			QuestionID: id,
			ChoiceText: choiceText,
		})
	}
	require.NoError(t, app.repo.Save(context.Background(), q))
	return q
}

func (app *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	return w
}

func (app *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	return w
}

func TestIndexNoQuestions(t *testing.T) {
	app := newTestApp()

	w := app.get("/polls/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No polls are available.")
}

func TestIndexShowsPastQuestionsNewestFirst(t *testing.T) {
	app := newTestApp()
	app.createQuestion(t, "Past question 1.", -30, "The only answer")
	app.createQuestion(t, "Past question 2.", -5, "The only answer")
	app.createQuestion(t, "Future question.", 30, "The only answer")
	app.createQuestion(t, "No choice.", -2)

	w := app.get("/polls/")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Past question 1.")
	assert.Contains(t, body, "Past question 2.")
	assert.NotContains(t, body, "Future question.")
	assert.NotContains(t, body, "No choice.")
	assert.Less(t, strings.Index(body, "Past question 2."), strings.Index(body, "Past question 1."),
		"newest question listed first")
}

func TestDetail(t *testing.T) {
	app := newTestApp()
	past := app.createQuestion(t, "Past question.", -5, "The only answer")
	future := app.createQuestion(t, "Future question.", 5, "The only answer")
	noChoice := app.createQuestion(t, "No choice.", -2)

	w := app.get("/polls/" + past.ID.String() + "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), past.QuestionText)
	assert.Contains(t, w.Body.String(), "The only answer")

	w = app.get("/polls/" + future.ID.String() + "/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get("/polls/" + noChoice.ID.String() + "/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get("/polls/" + uuid.NewString() + "/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResults(t *testing.T) {
	app := newTestApp()
	past := app.createQuestion(t, "Past question.", -5, "The only answer")
	future := app.createQuestion(t, "Future question.", 5, "The only answer")
	noChoice := app.createQuestion(t, "No choice.", -2)

	w := app.get("/polls/" + past.ID.String() + "/results/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), past.QuestionText)
	assert.Contains(t, w.Body.String(), "0 votes")

	w = app.get("/polls/" + future.ID.String() + "/results/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get("/polls/" + noChoice.ID.String() + "/results/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteRedirectsToResults(t *testing.T) {
	app := newTestApp()
	question := app.createQuestion(t, "Past question.", -30, "X")
	choice := question.Choices[0]

	w := app.postForm("/polls/"+question.ID.String()+"/vote/", url.Values{
		"choice": {choice.ID.String()},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/polls/"+question.ID.String()+"/results/", w.Header().Get("Location"))

	stored, err := app.repo.GetByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.Choices[0].Votes)

	// Follow the redirect: the tally shows up on the results page.
	w = app.get(w.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 vote")
}

func TestVoteWithoutChoiceRerendersDetail(t *testing.T) {
	app := newTestApp()
	question := app.createQuestion(t, "Past question.", -5, "X", "Y")

	w := app.postForm("/polls/"+question.ID.String()+"/vote/", url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), question.QuestionText)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice.")

	stored, err := app.repo.GetByID(context.Background(), question.ID)
	require.NoError(t, err)
	for _, c := range stored.Choices {
		assert.EqualValues(t, 0, c.Votes)
	}
}

func TestVoteWithForeignChoiceRerendersDetail(t *testing.T) {
	app := newTestApp()
	question := app.createQuestion(t, "Past question.", -5, "X")
	other := app.createQuestion(t, "Other question.", -5, "Z")

	w := app.postForm("/polls/"+question.ID.String()+"/vote/", url.Values{
		"choice": {other.Choices[0].ID.String()},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice.")

	stored, err := app.repo.GetByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stored.Choices[0].Votes)
}

func TestVoteMissingQuestionReturnsNotFound(t *testing.T) {
	app := newTestApp()

	w := app.postForm("/polls/"+uuid.NewString()+"/vote/", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.postForm("/polls/777/vote/", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuestion(t *testing.T) {
	app := newTestApp()

	body := `{"question_text": "What's up?", "choices": ["Not much", "The sky"]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Created with pub_date=now, so immediately listed.
	listed := app.get("/polls/")
	assert.Contains(t, listed.Body.String(), "What&#39;s up?")
}

func TestCreateQuestionRejectsBadInput(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader(`{"choices":["A"]}`))
	w = httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
