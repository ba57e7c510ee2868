package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academylabs/backend/domain"
)

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

func (f *fakeLessonRepo) ListByTopic(context.Context, string) ([]domain.Lesson, error) {
	return nil, nil
}
func (f *fakeLessonRepo) Create(context.Context, *domain.Lesson) error { return nil }
func (f *fakeLessonRepo) Update(context.Context, *domain.Lesson) error { return nil }
func (f *fakeLessonRepo) Delete(context.Context, string) error         { return nil }

type fakeProgressRepo struct {
	completions map[string]*domain.Completion
	failWith    error
}

func key(userID, lessonID string) string { return userID + "/" + lessonID }

func (f *fakeProgressRepo) Complete(_ context.Context, c *domain.Completion) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.completions[key(c.UserID, c.LessonID)]; ok {
		return domain.ErrLessonCompleted
	}
	f.completions[key(c.UserID, c.LessonID)] = c
	return nil
}

func (f *fakeProgressRepo) ListByUser(_ context.Context, userID string) ([]domain.Completion, error) {
	var out []domain.Completion
	for _, c := range f.completions {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeCreditRepo struct {
	entries  []*domain.CreditEntry
	failWith error
}

func (f *fakeCreditRepo) Insert(_ context.Context, entry *domain.CreditEntry) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeCreditRepo) Summary(_ context.Context, userID string) (*domain.CreditSummary, error) {
	summary := &domain.CreditSummary{UserID: userID}
	for _, e := range f.entries {
		if e.UserID == userID {
			summary.Balance += e.Amount
			summary.Entries = append(summary.Entries, *e)
		}
	}
	return summary, nil
}

type fakeBuffer struct {
	completions []*domain.Completion
	credits     []*domain.CreditEntry
}

func (f *fakeBuffer) BufferCompletion(_ context.Context, c *domain.Completion) error {
	f.completions = append(f.completions, c)
	return nil
}

func (f *fakeBuffer) BufferCredit(_ context.Context, e *domain.CreditEntry) error {
	f.credits = append(f.credits, e)
	return nil
}

func fixture() (*UseCase, *fakeProgressRepo, *fakeCreditRepo, *fakeBuffer) {
	lessons := &fakeLessonRepo{lessons: map[string]*domain.Lesson{
		"lesson-1": {ID: "lesson-1", TopicID: "topic-1", Title: "Intro", CreditValue: 10},
		"lesson-0": {ID: "lesson-0", TopicID: "topic-1", Title: "Welcome", CreditValue: 0},
	}}
	progressRepo := &fakeProgressRepo{completions: map[string]*domain.Completion{}}
	credits := &fakeCreditRepo{}
	buffer := &fakeBuffer{}
	return New(lessons, progressRepo, credits, buffer, nil), progressRepo, credits, buffer
}

func TestCompleteLessonAwardsCredits(t *testing.T) {
	uc, progressRepo, credits, _ := fixture()

	completion, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	require.NoError(t, err)

	assert.Equal(t, 10, completion.CreditsAwarded)
	assert.Len(t, progressRepo.completions, 1)
	require.Len(t, credits.entries, 1)
	assert.Equal(t, 10, credits.entries[0].Amount)
	assert.Equal(t, "lesson-1", credits.entries[0].LessonID)
}

func TestCompleteLessonZeroValueSkipsLedger(t *testing.T) {
	uc, _, credits, _ := fixture()

	_, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-0")
	require.NoError(t, err)
	assert.Empty(t, credits.entries)
}

func TestCompleteLessonTwiceConflicts(t *testing.T) {
	uc, _, credits, _ := fixture()

	_, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	require.NoError(t, err)

	_, err = uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	assert.ErrorIs(t, err, domain.ErrLessonCompleted)

	// No second credit entry.
	assert.Len(t, credits.entries, 1)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	uc, _, _, _ := fixture()

	_, err := uc.CompleteLesson(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestCompleteLessonBuffersOnOutage(t *testing.T) {
	uc, progressRepo, credits, buffer := fixture()
	progressRepo.failWith = errors.New("connection refused")
	credits.failWith = errors.New("connection refused")

	completion, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	require.NoError(t, err)
	require.NotNil(t, completion)

	require.Len(t, buffer.completions, 1)
	require.Len(t, buffer.credits, 1)
	assert.Equal(t, completion.ID, buffer.completions[0].ID)
	assert.Equal(t, 10, buffer.credits[0].Amount)
}

func TestCompleteLessonNoBufferPropagatesError(t *testing.T) {
	lessons := &fakeLessonRepo{lessons: map[string]*domain.Lesson{
		"lesson-1": {ID: "lesson-1", CreditValue: 10},
	}}
	progressRepo := &fakeProgressRepo{completions: map[string]*domain.Completion{}, failWith: errors.New("down")}
	uc := New(lessons, progressRepo, &fakeCreditRepo{}, nil, nil)

	_, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	assert.Error(t, err)
}

func TestCredits(t *testing.T) {
	uc, _, _, _ := fixture()

	_, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	require.NoError(t, err)

	summary, err := uc.Credits(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Balance)
	assert.Len(t, summary.Entries, 1)
}

func TestCompletions(t *testing.T) {
	uc, _, _, _ := fixture()

	_, err := uc.CompleteLesson(context.Background(), "user-1", "lesson-1")
	require.NoError(t, err)

	completions, err := uc.Completions(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, completions, 1)

	other, err := uc.Completions(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
