package repository

import (
	"context"
	"time"
)

// RevocationRepository records forced-logout events. A token whose issuance
// predates the recorded time for its identity must fail verification.
type RevocationRepository interface {
	Revoke(ctx context.Context, identityID string, at time.Time) error
	RevokedAt(ctx context.Context, identityID string) (time.Time, error)
	All(ctx context.Context) (map[string]time.Time, error)
}
