package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type lessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) repository.LessonRepository {
	return &lessonRepository{pool: pool}
}

const lessonColumns = `id, topic_id, title, content, position, credit_value, created_at, updated_at`

func (r *lessonRepository) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	var l domain.Lesson
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&l.ID, &l.TopicID, &l.Title, &l.Content, &l.Position, &l.CreditValue, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) ListByTopic(ctx context.Context, topicID string) ([]domain.Lesson, error) {
	const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE topic_id = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.TopicID, &l.Title, &l.Content, &l.Position, &l.CreditValue, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *lessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil || lesson.ID == "" || lesson.TopicID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO lessons (id, topic_id, title, content, position, credit_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, lesson.ID, lesson.TopicID, lesson.Title, lesson.Content, lesson.Position, lesson.CreditValue).
		Scan(&lesson.CreatedAt, &lesson.UpdatedAt)
}

func (r *lessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil || lesson.ID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		UPDATE lessons
		SET title = $2, content = $3, position = $4, credit_value = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, lesson.ID, lesson.Title, lesson.Content, lesson.Position, lesson.CreditValue)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}
