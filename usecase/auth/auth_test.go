package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/pkg/token"
)

const testSecret = "auth-uc-test-secret"

type fakeIdentityRepo struct {
	byID    map[string]*domain.Identity
	byEmail map[string]*domain.Identity
}

func newFakeIdentityRepo(identities ...*domain.Identity) *fakeIdentityRepo {
	repo := &fakeIdentityRepo{
		byID:    map[string]*domain.Identity{},
		byEmail: map[string]*domain.Identity{},
	}
	for _, id := range identities {
		repo.byID[id.ID] = id
		repo.byEmail[id.Email] = id
	}
	return repo
}

func (f *fakeIdentityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	identity, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return identity, nil
}

func (f *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	identity, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return identity, nil
}

func (f *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	f.byID[identity.ID] = identity
	f.byEmail[identity.Email] = identity
	return nil
}

func (f *fakeIdentityRepo) SetClaims(_ context.Context, id string, claims domain.Claims) error {
	identity, ok := f.byID[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	identity.Claims = claims
	return nil
}

func (f *fakeIdentityRepo) RemoveClaims(ctx context.Context, id string) error {
	return f.SetClaims(ctx, id, domain.Claims{})
}

func testIdentity(t *testing.T) *domain.Identity {
	t.Helper()
	identity := &domain.Identity{
		ID:     "uid-1",
		Email:  "ops@academy.test",
		Active: true,
		Claims: domain.Claims{Admin: true, Version: domain.ClaimsVersion},
	}
	require.NoError(t, identity.SetPassword("correct horse"))
	return identity
}

func newUseCase(t *testing.T, repo *fakeIdentityRepo, refreshWindow time.Duration) (*UseCase, *token.Verifier) {
	t.Helper()
	signer := token.NewSigner(testSecret, "academy", time.Hour)
	verifier := token.NewVerifier(testSecret, nil)
	return New(repo, signer, verifier, refreshWindow, nil), verifier
}

func TestLogin(t *testing.T) {
	identity := testIdentity(t)
	deactivated := testIdentity(t)
	deactivated.ID = "uid-2"
	deactivated.Email = "gone@academy.test"
	deactivated.Active = false

	repo := newFakeIdentityRepo(identity, deactivated)
	uc, verifier := newUseCase(t, repo, 24*time.Hour)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "ops@academy.test", password: "correct horse"},
		{name: "email is case-insensitive", email: "OPS@Academy.Test", password: "correct horse"},
		{name: "unknown email", email: "nobody@academy.test", password: "correct horse", wantErr: domain.ErrUnauthorized},
		{name: "wrong password", email: "ops@academy.test", password: "battery staple", wantErr: domain.ErrUnauthorized},
		{name: "empty password", email: "ops@academy.test", password: "", wantErr: domain.ErrUnauthorized},
		{name: "deactivated account", email: "gone@academy.test", password: "correct horse", wantErr: domain.ErrAccountDeactivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := uc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			claims, err := verifier.Verify(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "uid-1", claims.UID())
			assert.True(t, claims.Admin)
		})
	}
}

func TestLoginDoesNotLeakWhichFieldFailed(t *testing.T) {
	repo := newFakeIdentityRepo(testIdentity(t))
	uc, _ := newUseCase(t, repo, 24*time.Hour)

	_, unknownErr := uc.Login(context.Background(), "nobody@academy.test", "whatever")
	_, badPwdErr := uc.Login(context.Background(), "ops@academy.test", "wrong")

	assert.Equal(t, unknownErr, badPwdErr)
}

func TestRefreshPicksUpClaimChanges(t *testing.T) {
	identity := testIdentity(t)
	repo := newFakeIdentityRepo(identity)
	uc, verifier := newUseCase(t, repo, 24*time.Hour)

	session, err := uc.Login(context.Background(), identity.Email, "correct horse")
	require.NoError(t, err)

	// Granting superAdmin does not change the already issued token.
	require.NoError(t, repo.SetClaims(context.Background(), identity.ID, domain.Claims{
		Admin: true, SuperAdmin: true, Version: domain.ClaimsVersion,
	}))

	stale, err := verifier.Verify(session.Token)
	require.NoError(t, err)
	assert.False(t, stale.SuperAdmin)

	// The refreshed token carries the new flags.
	refreshed, err := uc.Refresh(context.Background(), session.Token)
	require.NoError(t, err)

	fresh, err := verifier.Verify(refreshed.Token)
	require.NoError(t, err)
	assert.True(t, fresh.SuperAdmin)
	assert.Equal(t, session.Claims.OrigIssuedAt, fresh.OrigIssuedAt)
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	repo := newFakeIdentityRepo(testIdentity(t))
	uc, _ := newUseCase(t, repo, 24*time.Hour)

	_, err := uc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshRejectsOutsideWindow(t *testing.T) {
	identity := testIdentity(t)
	repo := newFakeIdentityRepo(identity)

	signer := token.NewSigner(testSecret, "academy", time.Hour)
	verifier := token.NewVerifier(testSecret, nil)
	uc := New(repo, signer, verifier, time.Minute, nil)

	// Token whose original login is older than the refresh window.
	raw, _, err := signer.Issue(identity, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshRejectsDeactivatedIdentity(t *testing.T) {
	identity := testIdentity(t)
	repo := newFakeIdentityRepo(identity)
	uc, _ := newUseCase(t, repo, 24*time.Hour)

	session, err := uc.Login(context.Background(), identity.Email, "correct horse")
	require.NoError(t, err)

	identity.Active = false
	_, err = uc.Refresh(context.Background(), session.Token)
	assert.ErrorIs(t, err, domain.ErrAccountDeactivated)
}
