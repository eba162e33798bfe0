package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/polls/site/internal/core/domain"
	"github.com/polls/site/internal/core/ports"
)

const noChoiceMessage = "You didn't select a choice."

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// Vote handles POST /polls/{questionID}/vote/. A valid ballot redirects to
// the results page; a missing or foreign choice re-renders the detail form
// with an error and mutates nothing.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	input := ports.VoteInput{
		QuestionID: questionID,
		ChoiceID:   r.PostFormValue("choice"),
	}

	question, err := h.service.Vote(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.NotFound(w, r)
			return
		}
		if errors.Is(err, domain.ErrInvalidChoice) || errors.Is(err, domain.ErrChoiceNotFound) {
			render(w, http.StatusOK, "detail.html", detailData{
				Question:     question,
				ErrorMessage: noChoiceMessage,
			})
			return
		}
		slog.Error("failed to register vote", "question_id", questionID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/polls/%s/results/", question.ID), http.StatusFound)
}
