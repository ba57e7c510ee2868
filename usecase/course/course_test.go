package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academylabs/backend/domain"
)

type fakeCourseRepo struct {
	courses map[string]*domain.Course
}

func (f *fakeCourseRepo) List(_ context.Context, includeUnpublished bool) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if c.Published || includeUnpublished {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) GetBySlug(_ context.Context, slug string) (*domain.Course, error) {
	for _, c := range f.courses {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (f *fakeCourseRepo) Create(_ context.Context, c *domain.Course) error {
	f.courses[c.ID] = c
	return nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *domain.Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	f.courses[c.ID] = c
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	delete(f.courses, id)
	return nil
}

type fakeTopicRepo struct {
	topics map[string]*domain.Topic
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id string) (*domain.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return nil, domain.ErrTopicNotFound
	}
	return topic, nil
}

func (f *fakeTopicRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Topic, error) {
	var out []domain.Topic
	for _, topic := range f.topics {
		if topic.CourseID == courseID {
			out = append(out, *topic)
		}
	}
	return out, nil
}

func (f *fakeTopicRepo) Create(_ context.Context, topic *domain.Topic) error {
	f.topics[topic.ID] = topic
	return nil
}

func (f *fakeTopicRepo) Update(_ context.Context, topic *domain.Topic) error { return nil }
func (f *fakeTopicRepo) Delete(_ context.Context, id string) error           { return nil }

type fakeLessonRepo struct {
	lessons map[string]*domain.Lesson
}

func (f *fakeLessonRepo) GetByID(_ context.Context, id string) (*domain.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	return lesson, nil
}

func (f *fakeLessonRepo) ListByTopic(_ context.Context, topicID string) ([]domain.Lesson, error) {
	var out []domain.Lesson
	for _, lesson := range f.lessons {
		if lesson.TopicID == topicID {
			out = append(out, *lesson)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) Create(_ context.Context, lesson *domain.Lesson) error {
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeLessonRepo) Update(_ context.Context, lesson *domain.Lesson) error { return nil }
func (f *fakeLessonRepo) Delete(_ context.Context, id string) error             { return nil }

func fixture() (*UseCase, *fakeCourseRepo, *fakeTopicRepo, *fakeLessonRepo) {
	courses := &fakeCourseRepo{courses: map[string]*domain.Course{
		"c1": {ID: "c1", Slug: "go-basics", Title: "Go Basics", Published: true},
		"c2": {ID: "c2", Slug: "drafts", Title: "Draft Course", Published: false},
	}}
	topics := &fakeTopicRepo{topics: map[string]*domain.Topic{
		"t1": {ID: "t1", CourseID: "c1", Title: "Syntax", Position: 0},
	}}
	lessons := &fakeLessonRepo{lessons: map[string]*domain.Lesson{
		"l1": {ID: "l1", TopicID: "t1", Title: "Variables", CreditValue: 5},
	}}
	return New(courses, topics, lessons, nil), courses, topics, lessons
}

func TestGetCourseComposesTopicsAndLessons(t *testing.T) {
	uc, _, _, _ := fixture()

	course, err := uc.GetCourse(context.Background(), "go-basics", false)
	require.NoError(t, err)

	require.Len(t, course.Topics, 1)
	require.Len(t, course.Topics[0].Lessons, 1)
	assert.Equal(t, "Variables", course.Topics[0].Lessons[0].Title)
}

func TestGetCourseHidesUnpublished(t *testing.T) {
	uc, _, _, _ := fixture()

	_, err := uc.GetCourse(context.Background(), "drafts", false)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	course, err := uc.GetCourse(context.Background(), "drafts", true)
	require.NoError(t, err)
	assert.Equal(t, "c2", course.ID)
}

func TestListCoursesVisibility(t *testing.T) {
	uc, _, _, _ := fixture()

	public, err := uc.ListCourses(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	staff, err := uc.ListCourses(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, staff, 2)
}

func TestCreateCourseGeneratesSlugAndID(t *testing.T) {
	uc, courses, _, _ := fixture()

	course := &domain.Course{Title: "Advanced Go: Concurrency & Channels!"}
	require.NoError(t, uc.CreateCourse(context.Background(), course))

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "advanced-go-concurrency-channels", course.Slug)
	assert.Contains(t, courses.courses, course.ID)
}

func TestCreateTopicRequiresCourse(t *testing.T) {
	uc, _, _, _ := fixture()

	err := uc.CreateTopic(context.Background(), &domain.Topic{CourseID: "missing", Title: "Orphan"})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCreateLessonRequiresTopic(t *testing.T) {
	uc, _, _, _ := fixture()

	err := uc.CreateLesson(context.Background(), &domain.Lesson{TopicID: "missing", Title: "Orphan"})
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Go Basics", "go-basics"},
		{"  spaced  out  ", "spaced-out"},
		{"Números & Símbolos", "n-meros-s-mbolos"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
