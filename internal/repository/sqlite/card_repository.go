package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

// Insert creates the card together with its zero-count statistics row.
// Both inserts run in one transaction so a card can never exist without
// its statistics row.
func (r *cardRepository) Insert(ctx context.Context, categoryID int64, question, answer string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: category_id=%d", categoryID)

	var c models.Card
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		err := t.QueryRowContext(ctx, `
INSERT INTO cards (category_id, question, answer)
VALUES (?, ?, ?)
RETURNING id, category_id, question, answer, created_at, updated_at
`, categoryID, question, answer).Scan(&c.ID, &c.CategoryID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return err
		}

		var st models.CardStats
		err = t.QueryRowContext(ctx, `
INSERT INTO statistics (card_id)
VALUES (?)
RETURNING id, card_id, correct_count, wrong_count, last_attempt, created_at
`, c.ID).Scan(&st.ID, &st.CardID, &st.CorrectCount, &st.WrongCount, &st.LastAttempt, &st.CreatedAt)
		if err != nil {
			return err
		}
		c.Stats = &st
		return nil
	})
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, err
	}
	log.Debug("card inserted: id=%d", c.ID)
	return &c, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	err := r.db.QueryRowContext(ctx, `
SELECT id, category_id, question, answer, created_at, updated_at
FROM cards
WHERE id = ?
`, id).Scan(&c.ID, &c.CategoryID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ListByCategory(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: category_id=%d, search=%q", filter.CategoryID, filter.Search)

	query := sqlBuilder.Select(
		"c.id", "c.category_id", "c.question", "c.answer", "c.created_at", "c.updated_at",
		"s.id", "s.card_id", "s.correct_count", "s.wrong_count", "s.last_attempt", "s.created_at",
	).From("cards c").
		LeftJoin("statistics s ON s.card_id = c.id").
		Where(squirrel.Eq{"c.category_id": filter.CategoryID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"c.question": like},
			squirrel.Like{"c.answer": like},
		})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		var statsID, statsCardID sql.NullInt64
		var correct, wrong sql.NullInt64
		var lastAttempt, statsCreated sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.CategoryID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt,
			&statsID, &statsCardID, &correct, &wrong, &lastAttempt, &statsCreated,
		); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		if statsID.Valid {
			st := models.CardStats{
				ID:           statsID.Int64,
				CardID:       statsCardID.Int64,
				CorrectCount: int(correct.Int64),
				WrongCount:   int(wrong.Int64),
				CreatedAt:    statsCreated.Time,
			}
			if lastAttempt.Valid {
				t := lastAttempt.Time
				st.LastAttempt = &t
			}
			c.Stats = &st
		}
		cards = append(cards, c)
	}

	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) Update(ctx context.Context, id int64, question, answer string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", id)

	var c models.Card
	err := r.db.QueryRowContext(ctx, `
UPDATE cards
SET question = ?, answer = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, category_id, question, answer, created_at, updated_at
`, question, answer, id).Scan(&c.ID, &c.CategoryID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found for update: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, err
	}
	log.Debug("card updated: id=%d", c.ID)
	return &c, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug("card not found for delete: id=%d", id)
		return sql.ErrNoRows
	}
	log.Debug("card deleted: id=%d", id)
	return nil
}
