package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

type UserFilter struct {
	Search string
	Role   string
	Status string
	Limit  int
	Offset int
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	SetRoles(ctx context.Context, id string, roles []string) error
}
