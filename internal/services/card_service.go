package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
)

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, categoryID int64, question, answer string) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateCard(ctx context.Context, id int64, question, answer string) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

type cardService struct {
	cardRepo     repository.CardRepository
	categoryRepo repository.CategoryRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, categoryRepo repository.CategoryRepository) CardService {
	return &cardService{cardRepo: cardRepo, categoryRepo: categoryRepo}
}

func (s *cardService) CreateCard(ctx context.Context, categoryID int64, question, answer string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: category_id=%d", categoryID)

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return nil, errors.NewValidationError("question", "cannot be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	category, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		log.Error("failed to check category: %v", err)
		return nil, errors.NewPersistenceError("get category", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}

	// The repository creates the card and its statistics row in one
	// transaction, so there is no orphan window between the two.
	card, err := s.cardRepo.Insert(ctx, categoryID, question, answer)
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewPersistenceError("create card", err)
	}

	log.Info("card created: id=%d, category_id=%d", card.ID, categoryID)
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: category_id=%d", filter.CategoryID)

	category, err := s.categoryRepo.Get(ctx, filter.CategoryID)
	if err != nil {
		log.Error("failed to check category: %v", err)
		return nil, errors.NewPersistenceError("get category", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", filter.CategoryID)
	}

	cards, err := s.cardRepo.ListByCategory(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewPersistenceError("list cards", err)
	}

	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, question, answer string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return nil, errors.NewValidationError("question", "cannot be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	card, err := s.cardRepo.Update(ctx, id, question, answer)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewPersistenceError("update card", err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}

	log.Info("card updated: id=%d", id)
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("card", id)
		}
		log.Error("failed to delete card: %v", err)
		return errors.NewPersistenceError("delete card", err)
	}

	log.Info("card deleted: id=%d", id)
	return nil
}
