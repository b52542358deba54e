package api

import (
	"net/http"
	"strconv"

	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
)

type cardRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Answer   string `json:"answer" validate:"required,max=2000"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	categoryID, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.CardFilter{
		CategoryID: categoryID,
		Search:     r.URL.Query().Get("q"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	log.Debug("listing cards: category_id=%d", categoryID)
	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	categoryID, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), categoryID, req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card created via API: id=%d", card.ID)
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card updated via API: id=%d", id)
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card deleted via API: id=%d", id)
	respondJSON(w, r, http.StatusNoContent, nil)
}
