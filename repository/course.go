package repository

import (
	"context"

	"github.com/academylabs/backend/domain"
)

type CourseRepository interface {
	List(ctx context.Context, includeUnpublished bool) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Course, error)
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
}

type TopicRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Topic, error)
	Create(ctx context.Context, topic *domain.Topic) error
	Update(ctx context.Context, topic *domain.Topic) error
	Delete(ctx context.Context, id string) error
}
