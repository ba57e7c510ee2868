package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type progressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) repository.ProgressRepository {
	return &progressRepository{pool: pool}
}

func (r *progressRepository) Complete(ctx context.Context, completion *domain.Completion) error {
	if completion == nil || completion.UserID == "" || completion.LessonID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO lesson_completions (id, user_id, lesson_id, credits_awarded, completed_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING completed_at
	`
	err := r.pool.QueryRow(ctx, query,
		completion.ID,
		completion.UserID,
		completion.LessonID,
		completion.CreditsAwarded,
		nullTime(completion.CompletedAt),
	).Scan(&completion.CompletedAt)
	if isUniqueViolation(err) {
		return domain.ErrLessonCompleted
	}
	return err
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Completion, error) {
	const query = `
		SELECT id, user_id, lesson_id, credits_awarded, completed_at
		FROM lesson_completions
		WHERE user_id = $1
		ORDER BY completed_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []domain.Completion
	for rows.Next() {
		var c domain.Completion
		if err := rows.Scan(&c.ID, &c.UserID, &c.LessonID, &c.CreditsAwarded, &c.CompletedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
