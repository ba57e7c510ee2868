package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
	"github.com/academylabs/backend/usecase"
)

// UseCase records lesson completions and the credit entries they earn. When
// postgres is unreachable, writes land in the offline buffer and are replayed
// by the buffer processor.
type UseCase struct {
	lessons  repository.LessonRepository
	progress repository.ProgressRepository
	credits  repository.CreditRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(lessons repository.LessonRepository, progressRepo repository.ProgressRepository, credits repository.CreditRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		lessons:  lessons,
		progress: progressRepo,
		credits:  credits,
		buffer:   buffer,
		logger:   logger,
	}
}

// CompleteLesson marks a lesson done for the user and credits its value to
// the ledger. Completing the same lesson twice fails with a conflict and
// never awards credits again.
func (uc *UseCase) CompleteLesson(ctx context.Context, userID, lessonID string) (*domain.Completion, error) {
	if userID == "" || lessonID == "" {
		return nil, domain.ErrMissingParameters
	}

	lesson, err := uc.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completion := &domain.Completion{
		ID:             uuid.NewString(),
		UserID:         userID,
		LessonID:       lesson.ID,
		CreditsAwarded: lesson.CreditValue,
		CompletedAt:    now,
	}

	if err := uc.progress.Complete(ctx, completion); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return nil, err
		}
		if uc.buffer == nil {
			return nil, err
		}
		uc.logger.Warn("completion write failed, buffering",
			zap.String("user_id", userID),
			zap.String("lesson_id", lessonID),
			zap.Error(err))
		if bufErr := uc.buffer.BufferCompletion(ctx, completion); bufErr != nil {
			return nil, err
		}
	}

	if lesson.CreditValue > 0 {
		entry := &domain.CreditEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			LessonID:  lesson.ID,
			Amount:    lesson.CreditValue,
			Reason:    "lesson completed: " + lesson.Title,
			CreatedAt: now,
		}
		if err := uc.credits.Insert(ctx, entry); err != nil {
			if uc.buffer == nil {
				return nil, err
			}
			uc.logger.Warn("credit write failed, buffering",
				zap.String("user_id", userID),
				zap.Error(err))
			if bufErr := uc.buffer.BufferCredit(ctx, entry); bufErr != nil {
				return nil, err
			}
		}
	}

	return completion, nil
}

// Completions lists the user's completed lessons, newest first.
func (uc *UseCase) Completions(ctx context.Context, userID string) ([]domain.Completion, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameters
	}
	return uc.progress.ListByUser(ctx, userID)
}

// Credits returns the user's ledger with its derived balance.
func (uc *UseCase) Credits(ctx context.Context, userID string) (*domain.CreditSummary, error) {
	if userID == "" {
		return nil, domain.ErrMissingParameters
	}
	return uc.credits.Summary(ctx, userID)
}
