package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing categories")

	categories, err := s.CategoryService.ListCategories(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createCategoryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := s.CategoryService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("category created via API: id=%d", category.ID)
	respondJSON(w, r, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CategoryService.DeleteCategory(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("category deleted via API: id=%d", id)
	respondJSON(w, r, http.StatusNoContent, nil)
}

func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
