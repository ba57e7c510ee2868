package course

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

// UseCase manages the course catalog: courses, their topics and lessons.
type UseCase struct {
	courses repository.CourseRepository
	topics  repository.TopicRepository
	lessons repository.LessonRepository
	logger  *zap.Logger
}

func New(courses repository.CourseRepository, topics repository.TopicRepository, lessons repository.LessonRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		courses: courses,
		topics:  topics,
		lessons: lessons,
		logger:  logger,
	}
}

// ListCourses returns the catalog. Unpublished courses are visible only to
// staff callers.
func (uc *UseCase) ListCourses(ctx context.Context, includeUnpublished bool) ([]domain.Course, error) {
	return uc.courses.List(ctx, includeUnpublished)
}

// GetCourse loads a course by slug with its topics and lessons composed in.
func (uc *UseCase) GetCourse(ctx context.Context, slug string, includeUnpublished bool) (*domain.Course, error) {
	course, err := uc.courses.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !course.Published && !includeUnpublished {
		return nil, domain.ErrCourseNotFound
	}

	topics, err := uc.topics.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		lessons, err := uc.lessons.ListByTopic(ctx, topics[i].ID)
		if err != nil {
			return nil, err
		}
		topics[i].Lessons = lessons
	}
	course.Topics = topics
	return course, nil
}

func (uc *UseCase) CreateCourse(ctx context.Context, course *domain.Course) error {
	if course == nil || course.Title == "" {
		return domain.ErrInvalidPayload
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.Slug == "" {
		course.Slug = slugify(course.Title)
	}
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now
	return uc.courses.Create(ctx, course)
}

func (uc *UseCase) UpdateCourse(ctx context.Context, course *domain.Course) error {
	if course == nil || course.ID == "" {
		return domain.ErrMissingParameters
	}
	course.UpdatedAt = time.Now()
	return uc.courses.Update(ctx, course)
}

func (uc *UseCase) DeleteCourse(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingParameters
	}
	return uc.courses.Delete(ctx, id)
}

func (uc *UseCase) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.CourseID == "" || topic.Title == "" {
		return domain.ErrInvalidPayload
	}
	if _, err := uc.courses.GetByID(ctx, topic.CourseID); err != nil {
		return err
	}
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	now := time.Now()
	topic.CreatedAt = now
	topic.UpdatedAt = now
	return uc.topics.Create(ctx, topic)
}

func (uc *UseCase) UpdateTopic(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrMissingParameters
	}
	topic.UpdatedAt = time.Now()
	return uc.topics.Update(ctx, topic)
}

func (uc *UseCase) DeleteTopic(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingParameters
	}
	return uc.topics.Delete(ctx, id)
}

func (uc *UseCase) GetLesson(ctx context.Context, id string) (*domain.Lesson, error) {
	return uc.lessons.GetByID(ctx, id)
}

func (uc *UseCase) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil || lesson.TopicID == "" || lesson.Title == "" {
		return domain.ErrInvalidPayload
	}
	if _, err := uc.topics.GetByID(ctx, lesson.TopicID); err != nil {
		return err
	}
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	now := time.Now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	return uc.lessons.Create(ctx, lesson)
}

func (uc *UseCase) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil || lesson.ID == "" {
		return domain.ErrMissingParameters
	}
	lesson.UpdatedAt = time.Now()
	return uc.lessons.Update(ctx, lesson)
}

func (uc *UseCase) DeleteLesson(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingParameters
	}
	return uc.lessons.Delete(ctx, id)
}

func slugify(title string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
