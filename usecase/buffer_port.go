package usecase

import (
	"context"

	"github.com/academylabs/backend/domain"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferCompletion(ctx context.Context, completion *domain.Completion) error
	BufferCredit(ctx context.Context, entry *domain.CreditEntry) error
}
