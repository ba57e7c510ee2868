package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/pkg/token"
	"github.com/academylabs/backend/repository"
)

// Session is an issued token together with its decoded claims.
type Session struct {
	Token  string
	Claims *token.Claims
}

type UseCase struct {
	identities    repository.IdentityRepository
	signer        *token.Signer
	verifier      *token.Verifier
	refreshWindow time.Duration
	logger        *zap.Logger
}

func New(identities repository.IdentityRepository, signer *token.Signer, verifier *token.Verifier, refreshWindow time.Duration, logger *zap.Logger) *UseCase {
	if refreshWindow <= 0 {
		refreshWindow = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities:    identities,
		signer:        signer,
		verifier:      verifier,
		refreshWindow: refreshWindow,
		logger:        logger,
	}
}

// Login verifies credentials and issues a session token snapshotting the
// identity's current claims. Unknown email and wrong password both answer
// ErrUnauthorized so the response does not leak which one it was.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}

	identity, err := uc.identities.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := identity.CheckPassword(password); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Active {
		return nil, domain.ErrAccountDeactivated
	}

	raw, claims, err := uc.signer.Issue(identity)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("session issued",
		zap.String("uid", identity.ID),
		zap.Bool("admin", claims.Admin),
		zap.Bool("super_admin", claims.SuperAdmin))

	return &Session{Token: raw, Claims: claims}, nil
}

// Refresh exchanges a still-valid token for a fresh one carrying the
// identity's current claims. This is the point where stale privilege
// snapshots catch up with the claims store. The refresh window is anchored
// to the original login, not the latest refresh.
func (uc *UseCase) Refresh(ctx context.Context, raw string) (*Session, error) {
	claims, err := uc.verifier.Verify(raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	orig := time.Unix(claims.OrigIssuedAt, 0)
	if time.Now().After(orig.Add(uc.refreshWindow)) {
		return nil, domain.ErrUnauthorized
	}

	identity, err := uc.identities.GetByID(ctx, claims.UID())
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !identity.Active {
		return nil, domain.ErrAccountDeactivated
	}

	fresh, freshClaims, err := uc.signer.Issue(identity, orig)
	if err != nil {
		return nil, err
	}
	return &Session{Token: fresh, Claims: freshClaims}, nil
}
