package mentor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type fakeApplicationRepo struct {
	apps map[string]*domain.MentorApplication
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.MentorApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) GetOpenByUser(_ context.Context, userID string) (*domain.MentorApplication, error) {
	for _, app := range f.apps {
		if app.UserID == userID && app.IsOpen() {
			return app, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) List(_ context.Context, status string) ([]domain.MentorApplication, error) {
	var out []domain.MentorApplication
	for _, app := range f.apps {
		if status == "" || app.Status == status {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.MentorApplication) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id, status, note, reviewedBy string) error {
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.Status = status
	app.Note = note
	app.ReviewedBy = reviewedBy
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(context.Context, repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetRoles(_ context.Context, id string, roles []string) error {
	user, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Roles = roles
	return nil
}

const statement = "I have mentored juniors for three years and want to give back here."

func fixture() (*UseCase, *fakeApplicationRepo, *fakeUserRepo) {
	apps := &fakeApplicationRepo{apps: map[string]*domain.MentorApplication{}}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"learner-1": {ID: "learner-1", Roles: []string{domain.RoleLearner}, Status: "active"},
		"admin-1":   {ID: "admin-1", Roles: []string{domain.RoleAdmin}, Status: "active"},
	}}
	return New(apps, users, nil), apps, users
}

func TestApply(t *testing.T) {
	uc, _, _ := fixture()

	app, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "learner-1", app.UserID)
}

func TestApplyOnlyOneOpenApplication(t *testing.T) {
	uc, _, _ := fixture()

	_, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)

	_, err = uc.Apply(context.Background(), "learner-1", statement)
	assert.ErrorIs(t, err, domain.ErrOpenApplication)
}

func TestApplyAfterRejectionAllowed(t *testing.T) {
	uc, _, _ := fixture()

	app, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)
	require.NoError(t, uc.Reject(context.Background(), app.ID, "admin-1", "not yet"))

	_, err = uc.Apply(context.Background(), "learner-1", statement)
	assert.NoError(t, err)
}

func TestApplyExistingMentorRejected(t *testing.T) {
	uc, _, users := fixture()
	users.users["learner-1"].Roles = []string{domain.RoleLearner, domain.RoleMentor}

	_, err := uc.Apply(context.Background(), "learner-1", statement)
	assert.ErrorIs(t, err, domain.ErrOpenApplication)
}

func TestApproveGrantsMentorRole(t *testing.T) {
	uc, apps, users := fixture()

	app, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)

	require.NoError(t, uc.Approve(context.Background(), app.ID, "admin-1", "welcome"))

	assert.Equal(t, domain.ApplicationApproved, apps.apps[app.ID].Status)
	assert.Equal(t, "admin-1", apps.apps[app.ID].ReviewedBy)
	assert.True(t, users.users["learner-1"].HasRole(domain.RoleMentor))
	// Existing roles are preserved.
	assert.True(t, users.users["learner-1"].HasRole(domain.RoleLearner))
}

func TestReviewClosedApplication(t *testing.T) {
	uc, _, _ := fixture()

	app, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)
	require.NoError(t, uc.Reject(context.Background(), app.ID, "admin-1", ""))

	assert.ErrorIs(t, uc.Approve(context.Background(), app.ID, "admin-1", ""), domain.ErrApplicationClosed)
	assert.ErrorIs(t, uc.Reject(context.Background(), app.ID, "admin-1", ""), domain.ErrApplicationClosed)
}

func TestReviewUnknownApplication(t *testing.T) {
	uc, _, _ := fixture()
	err := uc.Approve(context.Background(), "missing", "admin-1", "")
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestRejectDoesNotGrantRole(t *testing.T) {
	uc, _, users := fixture()

	app, err := uc.Apply(context.Background(), "learner-1", statement)
	require.NoError(t, err)
	require.NoError(t, uc.Reject(context.Background(), app.ID, "admin-1", "needs more experience"))

	assert.False(t, users.users["learner-1"].HasRole(domain.RoleMentor))
}
