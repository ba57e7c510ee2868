package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository instantiates the Postgres-backed claims store.
func NewIdentityRepository(pool *pgxpool.Pool) repository.IdentityRepository {
	return &identityRepository{pool: pool}
}

const identityColumns = `id, email, password_hash, is_admin, is_super_admin, claims_ver, active, created_at, updated_at`

func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.ID == "" || identity.Email == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO identities (id, email, password_hash, is_admin, is_super_admin, claims_ver, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		identity.ID,
		identity.Email,
		identity.PasswordHash,
		identity.Claims.Admin,
		identity.Claims.SuperAdmin,
		domain.ClaimsVersion,
		identity.Active,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return err
	}
	identity.Claims.Version = domain.ClaimsVersion
	return nil
}

func (r *identityRepository) SetClaims(ctx context.Context, id string, claims domain.Claims) error {
	const query = `
		UPDATE identities
		SET is_admin = $2, is_super_admin = $3, claims_ver = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, claims.Admin, claims.SuperAdmin, domain.ClaimsVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *identityRepository) RemoveClaims(ctx context.Context, id string) error {
	return r.SetClaims(ctx, id, domain.Claims{Version: domain.ClaimsVersion})
}

func (r *identityRepository) scanOne(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Claims.Admin,
		&identity.Claims.SuperAdmin,
		&identity.Claims.Version,
		&identity.Active,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}
