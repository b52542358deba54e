package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
)

type startSessionRequest struct {
	CategoryID int64 `json:"category_id" validate:"required,gt=0"`
	Shuffle    bool  `json:"shuffle"`
	Seed       int64 `json:"seed"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type setShuffleRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.SessionService.StartSession(r.Context(), req.CategoryID, req.Shuffle, req.Seed)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("session started via API: id=%s", view.ID)
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	view, err := s.SessionService.GetSession(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	var req submitAnswerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.SessionService.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAdvanceSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	view, err := s.SessionService.Advance(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSetShuffle(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	var req setShuffleRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.SessionService.SetShuffle(r.Context(), id, req.Enabled)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, view)
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
