package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type mentorRepository struct {
	pool *pgxpool.Pool
}

func NewMentorApplicationRepository(pool *pgxpool.Pool) repository.MentorApplicationRepository {
	return &mentorRepository{pool: pool}
}

const applicationColumns = `id, user_id, statement, status, note, reviewed_by, created_at, updated_at`

func (r *mentorRepository) GetByID(ctx context.Context, id string) (*domain.MentorApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM mentor_applications WHERE id = $1`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *mentorRepository) GetOpenByUser(ctx context.Context, userID string) (*domain.MentorApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM mentor_applications WHERE user_id = $1 AND status = 'pending'`
	return scanApplication(r.pool.QueryRow(ctx, query, userID))
}

func (r *mentorRepository) List(ctx context.Context, status string) ([]domain.MentorApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM mentor_applications`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.MentorApplication
	for rows.Next() {
		app, err := scanApplicationRows(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *mentorRepository) Create(ctx context.Context, app *domain.MentorApplication) error {
	if app == nil || app.ID == "" || app.UserID == "" {
		return domain.ErrInvalidPayload
	}
	const query = `
		INSERT INTO mentor_applications (id, user_id, statement, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, app.ID, app.UserID, app.Statement, app.Status).
		Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *mentorRepository) UpdateStatus(ctx context.Context, id, status, note, reviewedBy string) error {
	const query = `
		UPDATE mentor_applications
		SET status = $2, note = $3, reviewed_by = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, status, nullString(note), nullString(reviewedBy))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.MentorApplication, error) {
	app, err := scanApplicationRows(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

func scanApplicationRows(row pgx.Row) (*domain.MentorApplication, error) {
	var (
		app        domain.MentorApplication
		note       sql.NullString
		reviewedBy sql.NullString
	)
	err := row.Scan(&app.ID, &app.UserID, &app.Statement, &app.Status, &note, &reviewedBy, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.Note = note.String
	app.ReviewedBy = reviewedBy.String
	return &app, nil
}
