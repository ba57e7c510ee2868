package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type topicRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRepository(pool *pgxpool.Pool) repository.TopicRepository {
	return &topicRepository{pool: pool}
}

const topicColumns = `id, course_id, title, position, created_at, updated_at`

func (r *topicRepository) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	const query = `SELECT ` + topicColumns + ` FROM topics WHERE id = $1`
	var t domain.Topic
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.CourseID, &t.Title, &t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *topicRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Topic, error) {
	const query = `SELECT ` + topicColumns + ` FROM topics WHERE course_id = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Title, &t.Position, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *topicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" || topic.CourseID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO topics (id, course_id, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, topic.ID, topic.CourseID, topic.Title, topic.Position).
		Scan(&topic.CreatedAt, &topic.UpdatedAt)
}

func (r *topicRepository) Update(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `UPDATE topics SET title = $2, position = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, topic.ID, topic.Title, topic.Position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}

func (r *topicRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}
