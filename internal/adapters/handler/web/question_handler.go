package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
)

type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

type indexData struct {
	Questions []*domain.Question
}

type detailData struct {
	Question     *domain.Question
	ErrorMessage string
}

// Index handles GET /polls/ and lists the publicly visible questions,
// newest first.
func (h *QuestionHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListPublished(r.Context())
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	render(w, http.StatusOK, "index.html", indexData{Questions: questions})
}

// Detail handles GET /polls/{questionID}/ and shows the ballot form.
func (h *QuestionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, ok := h.lookupPublished(w, r)
	if !ok {
		return
	}
	render(w, http.StatusOK, "detail.html", detailData{Question: question})
}

// Results handles GET /polls/{questionID}/results/ and shows the tallies.
func (h *QuestionHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, ok := h.lookupPublished(w, r)
	if !ok {
		return
	}
	render(w, http.StatusOK, "results.html", detailData{Question: question})
}

func (h *QuestionHandler) lookupPublished(w http.ResponseWriter, r *http.Request) (*domain.Question, bool) {
	id := chi.URLParam(r, "questionID")

	question, err := h.service.GetPublished(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) || errors.Is(err, domain.ErrInvalidQuestionID) {
			http.NotFound(w, r)
			return nil, false
		}
		slog.Error("failed to get question", "question_id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return question, true
}

type createQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date"`
	Choices      []string   `json:"choices"`
}

// CreateQuestion handles POST /admin/questions. Question setup is an
// administrative action; there is no public creation surface.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		QuestionText: req.QuestionText,
		PubDate:      req.PubDate,
		Choices:      req.Choices,
	}

	question, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to create question", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(question); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
