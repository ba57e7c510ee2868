package mentor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

// UseCase handles mentor applications and their review. Approval appends the
// mentor role to the applicant's persisted record; it never touches identity
// claims.
type UseCase struct {
	applications repository.MentorApplicationRepository
	users        repository.UserRepository
	logger       *zap.Logger
}

func New(applications repository.MentorApplicationRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		users:        users,
		logger:       logger,
	}
}

// Apply opens a mentor application. A user can have at most one open
// application at a time.
func (uc *UseCase) Apply(ctx context.Context, userID, statement string) (*domain.MentorApplication, error) {
	if userID == "" || statement == "" {
		return nil, domain.ErrMissingParameters
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(domain.RoleMentor) {
		return nil, domain.ErrOpenApplication
	}

	if open, err := uc.applications.GetOpenByUser(ctx, userID); err == nil && open.IsOpen() {
		return nil, domain.ErrOpenApplication
	} else if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	now := time.Now()
	app := &domain.MentorApplication{
		ID:        uuid.NewString(),
		UserID:    userID,
		Statement: statement,
		Status:    domain.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// List returns applications, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string) ([]domain.MentorApplication, error) {
	return uc.applications.List(ctx, status)
}

// Approve closes an open application and grants the mentor role.
func (uc *UseCase) Approve(ctx context.Context, applicationID, reviewerID, note string) error {
	app, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !app.IsOpen() {
		return domain.ErrApplicationClosed
	}

	user, err := uc.users.GetByID(ctx, app.UserID)
	if err != nil {
		return err
	}
	if !user.HasRole(domain.RoleMentor) {
		roles := append(append([]string(nil), user.Roles...), domain.RoleMentor)
		if err := uc.users.SetRoles(ctx, user.ID, roles); err != nil {
			return err
		}
	}

	if err := uc.applications.UpdateStatus(ctx, app.ID, domain.ApplicationApproved, note, reviewerID); err != nil {
		return err
	}

	uc.logger.Info("mentor application approved",
		zap.String("application_id", app.ID),
		zap.String("user_id", app.UserID),
		zap.String("reviewer", reviewerID))
	return nil
}

// Reject closes an open application without changing roles.
func (uc *UseCase) Reject(ctx context.Context, applicationID, reviewerID, note string) error {
	app, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !app.IsOpen() {
		return domain.ErrApplicationClosed
	}
	return uc.applications.UpdateStatus(ctx, app.ID, domain.ApplicationRejected, note, reviewerID)
}
