package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(questionHandler *QuestionHandler, voteHandler *VoteHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", questionHandler.Index)
		r.Get("/{questionID}", questionHandler.Detail)
		r.Get("/{questionID}/results", questionHandler.Results)
		r.Post("/{questionID}/vote", voteHandler.Vote)
	})

	r.Post("/admin/questions", questionHandler.CreateQuestion)

	return r
}
