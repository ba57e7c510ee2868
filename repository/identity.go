package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

// IdentityRepository is the claims store surface: the only place identity
// privilege flags are read and written.
type IdentityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) error
	SetClaims(ctx context.Context, id string, claims domain.Claims) error
	RemoveClaims(ctx context.Context, id string) error
}
