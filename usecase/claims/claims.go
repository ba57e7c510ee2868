package claims

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

// RevocationRecorder pushes a revocation event into the in-memory checker so
// it takes effect on the next request, ahead of the periodic refresh.
type RevocationRecorder interface {
	Record(identityID string, at time.Time)
}

// UseCase mutates identity privilege flags in the claims store. Changing
// claims never touches issued tokens; holders keep their snapshot until
// refresh or expiry unless a revocation is recorded alongside.
type UseCase struct {
	identities  repository.IdentityRepository
	revocations repository.RevocationRepository
	recorder    RevocationRecorder
	logger      *zap.Logger
}

func New(identities repository.IdentityRepository, revocations repository.RevocationRepository, recorder RevocationRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities:  identities,
		revocations: revocations,
		recorder:    recorder,
		logger:      logger,
	}
}

// Set writes the target identity's privilege flags. Re-applying the current
// value is a no-op success. With revoke set, tokens issued before this call
// stop verifying immediately.
func (uc *UseCase) Set(ctx context.Context, actorUID, targetUID string, flags domain.Claims, revoke bool) error {
	if targetUID == "" {
		return domain.ErrMissingParameters
	}

	flags.Version = domain.ClaimsVersion
	if err := uc.identities.SetClaims(ctx, targetUID, flags); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeUpstream, "claims store write failed", err)
	}

	uc.logger.Info("claims updated",
		zap.String("actor", actorUID),
		zap.String("target", targetUID),
		zap.Bool("admin", flags.Admin),
		zap.Bool("super_admin", flags.SuperAdmin))

	if revoke {
		return uc.Revoke(ctx, actorUID, targetUID)
	}
	return nil
}

// Remove clears all privilege flags from the target identity.
func (uc *UseCase) Remove(ctx context.Context, actorUID, targetUID string, revoke bool) error {
	if targetUID == "" {
		return domain.ErrMissingParameters
	}

	if err := uc.identities.RemoveClaims(ctx, targetUID); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeUpstream, "claims store write failed", err)
	}

	uc.logger.Info("claims removed",
		zap.String("actor", actorUID),
		zap.String("target", targetUID))

	if revoke {
		return uc.Revoke(ctx, actorUID, targetUID)
	}
	return nil
}

// Revoke records a forced-logout event for the target. Tokens issued at or
// before the event time fail verification from here on.
func (uc *UseCase) Revoke(ctx context.Context, actorUID, targetUID string) error {
	if targetUID == "" {
		return domain.ErrMissingParameters
	}

	at := time.Now()
	if err := uc.revocations.Revoke(ctx, targetUID, at); err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, "revocation write failed", err)
	}
	if uc.recorder != nil {
		uc.recorder.Record(targetUID, at)
	}

	uc.logger.Info("sessions revoked",
		zap.String("actor", actorUID),
		zap.String("target", targetUID))
	return nil
}
