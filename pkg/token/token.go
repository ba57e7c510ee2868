package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/academylabs/backend/domain"
)

// Verification failures. The boundary layers collapse all of them into an
// unauthorized response; callers that care (tests, audit logs) can
// distinguish them with errors.Is.
var (
	ErrInvalidToken     = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrRevoked          = errors.New("token revoked")
)

// Claims is the fixed, versioned record carried by a session token. It
// snapshots the identity's privilege flags at issuance time; the snapshot may
// be stale relative to the claims store until the token is refreshed.
type Claims struct {
	jwt.RegisteredClaims
	Version      int    `json:"ver"`
	Email        string `json:"email,omitempty"`
	Admin        bool   `json:"admin,omitempty"`
	SuperAdmin   bool   `json:"super_admin,omitempty"`
	OrigIssuedAt int64  `json:"oriat,omitempty"`
}

// UID returns the identity id the token was issued for.
func (c *Claims) UID() string { return c.Subject }

// RevocationChecker reports the latest recorded revocation event for an
// identity. Implementations must answer from memory; the request path never
// waits on a store round trip here.
type RevocationChecker interface {
	RevokedAt(identityID string) (time.Time, bool)
}

// Signer mints session tokens from live identity state.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue builds and signs a token snapshotting the identity's current claims.
// An optional original issuance time is carried through refreshes so the
// refresh window is anchored to the first login.
func (s *Signer) Issue(identity *domain.Identity, orig ...time.Time) (string, *Claims, error) {
	if identity == nil {
		return "", nil, domain.ErrInvalidPayload
	}

	now := time.Now()
	oriat := now
	if len(orig) > 0 && !orig[0].IsZero() {
		oriat = orig[0]
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Version:      domain.ClaimsVersion,
		Email:        identity.Email,
		Admin:        identity.Claims.Admin,
		SuperAdmin:   identity.Claims.SuperAdmin,
		OrigIssuedAt: oriat.Unix(),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return raw, claims, nil
}

// TTL exposes the configured token lifetime (used when setting cookies).
func (s *Signer) TTL() time.Duration { return s.ttl }

// Verifier checks token signatures, expiry, shape and revocation state.
// Verification is pure; it never mutates anything.
type Verifier struct {
	secret      []byte
	revocations RevocationChecker
}

func NewVerifier(secret string, revocations RevocationChecker) *Verifier {
	return &Verifier{secret: []byte(secret), revocations: revocations}
}

// Verify decodes raw and returns its claims, or exactly one of the
// verification errors above. Any ambiguity resolves to a failure.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Version != domain.ClaimsVersion {
		return nil, ErrInvalidToken
	}

	if v.revocations != nil && claims.IssuedAt != nil {
		if at, revoked := v.revocations.RevokedAt(claims.Subject); revoked && !claims.IssuedAt.Time.After(at) {
			return nil, ErrRevoked
		}
	}
	return claims, nil
}

func classify(err error) error {
	var ve *jwt.ValidationError
	if !errors.As(err, &ve) {
		return ErrInvalidToken
	}
	switch {
	case ve.Errors&jwt.ValidationErrorMalformed != 0:
		return ErrInvalidToken
	case ve.Errors&jwt.ValidationErrorExpired != 0:
		return ErrExpired
	case ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return ErrInvalidSignature
	default:
		return ErrInvalidToken
	}
}
