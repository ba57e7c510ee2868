package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

type ProgressRepository interface {
	// Complete inserts a completion; a second completion for the same
	// user+lesson fails with domain.ErrLessonCompleted.
	Complete(ctx context.Context, completion *domain.Completion) error
	ListByUser(ctx context.Context, userID string) ([]domain.Completion, error)
}

type CreditRepository interface {
	Insert(ctx context.Context, entry *domain.CreditEntry) error
	Summary(ctx context.Context, userID string) (*domain.CreditSummary, error)
}
