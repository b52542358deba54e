package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// RecordAttempt bumps exactly one counter for the card. The increment
// happens in the UPDATE itself, so concurrent attempts cannot lose
// each other. A card whose statistics row is missing gets one created
// seeded with this attempt instead of dropping it.
func (r *statsRepository) RecordAttempt(ctx context.Context, cardID int64, correct bool) (*models.CardStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("recording attempt: card_id=%d, correct=%t", cardID, correct)

	column := "wrong_count"
	if correct {
		column = "correct_count"
	}
	now := time.Now()
	today := now.Format("2006-01-02")

	var st models.CardStats
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
UPDATE statistics
SET %[1]s = %[1]s + 1, last_attempt = ?, attempt_date = ?
WHERE card_id = ?
RETURNING id, card_id, correct_count, wrong_count, last_attempt, attempt_date, created_at
`, column), now, today, cardID).Scan(&st.ID, &st.CardID, &st.CorrectCount, &st.WrongCount, &st.LastAttempt, &st.AttemptDate, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Statistics row is missing (orphaned card from an older,
		// non-transactional create path). Repair it rather than
		// silently dropping the attempt.
		log.Warn("statistics row missing for card_id=%d, repairing", cardID)
		return r.repairAttempt(ctx, cardID, column, now, today)
	}
	if err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, err
	}
	log.Debug("attempt recorded: card_id=%d, correct=%d, wrong=%d", cardID, st.CorrectCount, st.WrongCount)
	return &st, nil
}

func (r *statsRepository) repairAttempt(ctx context.Context, cardID int64, column string, now time.Time, today string) (*models.CardStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var st models.CardStats
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
INSERT INTO statistics (card_id, %[1]s, last_attempt, attempt_date)
VALUES (?, 1, ?, ?)
ON CONFLICT(card_id) DO UPDATE
SET %[1]s = %[1]s + 1, last_attempt = excluded.last_attempt, attempt_date = excluded.attempt_date
RETURNING id, card_id, correct_count, wrong_count, last_attempt, attempt_date, created_at
`, column), cardID, now, today).Scan(&st.ID, &st.CardID, &st.CorrectCount, &st.WrongCount, &st.LastAttempt, &st.AttemptDate, &st.CreatedAt)
	if err != nil {
		log.Error("failed to repair statistics for card_id=%d: %v", cardID, err)
		return nil, err
	}
	log.Info("statistics row repaired: card_id=%d", cardID)
	return &st, nil
}

func (r *statsRepository) ForCard(ctx context.Context, cardID int64) (*models.CardStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting statistics: card_id=%d", cardID)

	var st models.CardStats
	var attemptDate sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT id, card_id, correct_count, wrong_count, last_attempt, attempt_date, created_at
FROM statistics
WHERE card_id = ?
`, cardID).Scan(&st.ID, &st.CardID, &st.CorrectCount, &st.WrongCount, &st.LastAttempt, &attemptDate, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("statistics not found: card_id=%d", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get statistics: %v", err)
		return nil, err
	}
	if attemptDate.Valid {
		st.AttemptDate = attemptDate.String
	}
	return &st, nil
}

func (r *statsRepository) ListReport(ctx context.Context, filter models.ReportFilter) ([]models.StatsReportRow, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("listing statistics report: category_id=%d", filter.CategoryID)

	query := sqlBuilder.Select(
		"s.id", "s.card_id", "s.correct_count", "s.wrong_count", "s.last_attempt", "s.attempt_date", "s.created_at",
		"c.question", "c.answer", "cat.name",
	).From("statistics s").
		Join("cards c ON c.id = s.card_id").
		Join("categories cat ON cat.id = c.category_id").
		OrderBy("s.created_at DESC", "s.id DESC")

	if filter.CategoryID != 0 {
		query = query.Where(squirrel.Eq{"c.category_id": filter.CategoryID})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build report query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list statistics report: %v", err)
		return nil, err
	}
	defer rows.Close()

	var report []models.StatsReportRow
	for rows.Next() {
		var row models.StatsReportRow
		var attemptDate sql.NullString
		if err := rows.Scan(
			&row.ID, &row.CardID, &row.CorrectCount, &row.WrongCount, &row.LastAttempt, &attemptDate, &row.CreatedAt,
			&row.Question, &row.Answer, &row.CategoryName,
		); err != nil {
			log.Error("failed to scan report row: %v", err)
			return nil, err
		}
		if attemptDate.Valid {
			row.AttemptDate = attemptDate.String
		}
		report = append(report, row)
	}

	log.Debug("found %d report rows", len(report))
	return report, rows.Err()
}
