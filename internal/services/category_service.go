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

// CategoryService handles category-related business logic
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating category: name=%s", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	category, err := s.categoryRepo.Insert(ctx, name)
	if err != nil {
		log.Error("failed to create category: %v", err)
		return nil, errors.NewPersistenceError("create category", err)
	}

	log.Info("category created: id=%d, name=%s", category.ID, category.Name)
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing categories")

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, errors.NewPersistenceError("list categories", err)
	}

	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting category: id=%d", id)

	category, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get category: %v", err)
		return nil, errors.NewPersistenceError("get category", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", id)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting category: id=%d", id)

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("category", id)
		}
		log.Error("failed to delete category: %v", err)
		return errors.NewPersistenceError("delete category", err)
	}

	log.Info("category deleted: id=%d", id)
	return nil
}
