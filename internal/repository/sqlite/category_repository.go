package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository implementation
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Insert(ctx context.Context, name string) (*models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("inserting category: name=%s", name)

	var c models.Category
	err := r.db.QueryRowContext(ctx, `
INSERT INTO categories (name)
VALUES (?)
RETURNING id, name, created_at
`, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		log.Error("failed to insert category: %v", err)
		return nil, err
	}
	log.Debug("category inserted: id=%d", c.ID)
	return &c, nil
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("getting category: id=%d", id)

	var c models.Category
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at
FROM categories
WHERE id = ?
`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("category not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get category: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("listing categories")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at
FROM categories
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			log.Error("failed to scan category row: %v", err)
			return nil, err
		}
		categories = append(categories, c)
	}

	log.Debug("found %d categories", len(categories))
	return categories, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("deleting category: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete category: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug("category not found for delete: id=%d", id)
		return sql.ErrNoRows
	}
	// Cards and statistics go with it via ON DELETE CASCADE.
	log.Debug("category deleted: id=%d", id)
	return nil
}
