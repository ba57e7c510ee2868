package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type courseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) repository.CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, slug, title, description, published, created_at, updated_at`

func (r *courseRepository) List(ctx context.Context, includeUnpublished bool) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	if !includeUnpublished {
		query += ` WHERE published`
	}
	query += ` ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.Published, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return scanCourse(r.pool.QueryRow(ctx, query, slug))
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	if course == nil || course.ID == "" || course.Slug == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO courses (id, slug, title, description, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, course.ID, course.Slug, course.Title, course.Description, course.Published).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.WrapError(domain.ErrCodeConflict, "course slug already in use", err)
	}
	return err
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	if course == nil || course.ID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		UPDATE courses
		SET slug = $2, title = $3, description = $4, published = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, course.ID, course.Slug, course.Title, course.Description, course.Published)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.Published, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}
