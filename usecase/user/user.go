package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

// UseCase covers admin-side user management over the persisted records.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return uc.users.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrMissingParameters
	}
	return uc.users.GetByID(ctx, id)
}

// SetRoles replaces the user's role set. Every role must be a known value.
func (uc *UseCase) SetRoles(ctx context.Context, actorUID, targetID string, roles []string) error {
	if targetID == "" || len(roles) == 0 {
		return domain.ErrMissingParameters
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return domain.ErrInvalidPayload
		}
	}

	if _, err := uc.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := uc.users.SetRoles(ctx, targetID, roles); err != nil {
		return err
	}

	uc.logger.Info("user roles updated",
		zap.String("actor", actorUID),
		zap.String("target", targetID),
		zap.Strings("roles", roles))
	return nil
}
