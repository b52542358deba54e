package api

import (
	"net/http"
	"strconv"

	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
)

func (s *Server) handleStatisticsReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("building statistics report")

	var filter models.ReportFilter
	if categoryID, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64); err == nil && categoryID > 0 {
		filter.CategoryID = categoryID
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	report, err := s.StatsService.GetReport(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"statistics": report})
}
