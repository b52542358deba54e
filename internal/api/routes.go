package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/categories", s.handleListCategories)
	r.Post("/categories", s.handleCreateCategory)
	r.Delete("/categories/{id}", s.handleDeleteCategory)
	r.Get("/categories/{id}/cards", s.handleListCards)
	r.Post("/categories/{id}/cards", s.handleCreateCard)

	r.Put("/cards/{id}", s.handleUpdateCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)

	r.Get("/statistics", s.handleStatisticsReport)

	r.Post("/sessions", s.handleStartSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/answer", s.handleSubmitAnswer)
	r.Post("/sessions/{id}/advance", s.handleAdvanceSession)
	r.Post("/sessions/{id}/shuffle", s.handleSetShuffle)

	return r
}
