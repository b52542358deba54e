package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/services"
)

type Server struct {
	CategoryService services.CategoryService
	CardService     services.CardService
	StatsService    services.StatsService
	SessionService  services.SessionService
	DB              *sql.DB

	validate *validator.Validate
}

// NewServer wires the HTTP layer over the given services. The DB
// handle is only used by the readiness probe.
func NewServer(categories services.CategoryService, cards services.CardService, stats services.StatsService, sessions services.SessionService, db *sql.DB) *Server {
	return &Server{
		CategoryService: categories,
		CardService:     cards,
		StatsService:    stats,
		SessionService:  sessions,
		DB:              db,
		validate:        validator.New(),
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON parses the request body into dst and runs struct
// validation on it.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.NewValidationError(verrs[0].Field(), "failed rule '"+verrs[0].Tag()+"'")
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
