package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates the Postgres-backed user record store.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, name, roles, status, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var (
		conds []string
		args  []interface{}
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(email ILIKE $%d OR name ILIKE $%d)", len(args), len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("$%d = ANY(roles)", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Roles, &user.Status, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	if user.Status == "" {
		user.Status = "active"
	}
	if user.Roles == nil {
		user.Roles = []string{domain.RoleLearner}
	}

	const query = `
		INSERT INTO users (id, email, name, roles, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), NOW())
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
			name = EXCLUDED.name,
			roles = EXCLUDED.roles,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Roles,
		user.Status,
		nullTime(user.CreatedAt),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) SetRoles(ctx context.Context, id string, roles []string) error {
	const query = `UPDATE users SET roles = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, roles)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Roles, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
