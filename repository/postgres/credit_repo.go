package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type creditRepository struct {
	pool *pgxpool.Pool
}

func NewCreditRepository(pool *pgxpool.Pool) repository.CreditRepository {
	return &creditRepository{pool: pool}
}

func (r *creditRepository) Insert(ctx context.Context, entry *domain.CreditEntry) error {
	if entry == nil || entry.UserID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO credit_entries (id, user_id, lesson_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		nullString(entry.LessonID),
		entry.Amount,
		entry.Reason,
		nullTime(entry.CreatedAt),
	).Scan(&entry.CreatedAt)
}

func (r *creditRepository) Summary(ctx context.Context, userID string) (*domain.CreditSummary, error) {
	const query = `
		SELECT id, user_id, lesson_id, amount, reason, created_at
		FROM credit_entries
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.CreditSummary{UserID: userID}
	for rows.Next() {
		var (
			entry    domain.CreditEntry
			lessonID sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &lessonID, &entry.Amount, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.LessonID = lessonID.String
		summary.Balance += entry.Amount
		summary.Entries = append(summary.Entries, entry)
	}
	return summary, rows.Err()
}
