package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

type MentorApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.MentorApplication, error)
	GetOpenByUser(ctx context.Context, userID string) (*domain.MentorApplication, error)
	List(ctx context.Context, status string) ([]domain.MentorApplication, error)
	Create(ctx context.Context, app *domain.MentorApplication) error
	UpdateStatus(ctx context.Context, id, status, note, reviewedBy string) error
}
