package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

type LessonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
	ListByTopic(ctx context.Context, topicID string) ([]domain.Lesson, error)
	Create(ctx context.Context, lesson *domain.Lesson) error
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id string) error
}
