package services

import (
	"context"
	"encoding/json"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/infrastructure/buffer"
	"github.com/academylabs/backend/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferCompletion(ctx context.Context, completion *domain.Completion) error {
	if b.processor == nil || completion == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(completion)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:     completion.ID,
		UserID: completion.UserID,
		Entity: buffer.EntityCompletion,
		Data:   payload,
	}
	return b.processor.Enqueue(item)
}

func (b *BufferBridge) BufferCredit(ctx context.Context, entry *domain.CreditEntry) error {
	if b.processor == nil || entry == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:     entry.ID,
		UserID: entry.UserID,
		Entity: buffer.EntityCredit,
		Data:   payload,
	}
	return b.processor.Enqueue(item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
