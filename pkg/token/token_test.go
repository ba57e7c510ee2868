package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academylabs/backend/domain"
)

const testSecret = "test-secret-please-rotate"

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:     "id-123",
		Email:  "ops@academy.test",
		Active: true,
		Claims: domain.Claims{Admin: true, SuperAdmin: false, Version: domain.ClaimsVersion},
	}
}

type fakeRevocations struct {
	at map[string]time.Time
}

func (f *fakeRevocations) RevokedAt(id string) (time.Time, bool) {
	at, ok := f.at[id]
	return at, ok
}

func TestIssueAndVerify(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Hour)
	verifier := NewVerifier(testSecret, nil)

	raw, issued, err := signer.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := verifier.Verify(raw)
	require.NoError(t, err)

	assert.Equal(t, "id-123", claims.UID())
	assert.Equal(t, "ops@academy.test", claims.Email)
	assert.True(t, claims.Admin)
	assert.False(t, claims.SuperAdmin)
	assert.Equal(t, domain.ClaimsVersion, claims.Version)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestVerifyEmptyToken(t *testing.T) {
	verifier := NewVerifier(testSecret, nil)
	_, err := verifier.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	verifier := NewVerifier(testSecret, nil)
	_, err := verifier.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Nanosecond)
	verifier := NewVerifier(testSecret, nil)

	raw, _, err := signer.Issue(testIdentity())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Hour)
	verifier := NewVerifier("some-other-secret", nil)

	raw, _, err := signer.Issue(testIdentity())
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyTamperedPayload(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Hour)
	verifier := NewVerifier(testSecret, nil)

	raw, _, err := signer.Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body))
	body["super_admin"] = true
	forged, err := json.Marshal(body)
	require.NoError(t, err)

	parts[1] = base64.RawURLEncoding.EncodeToString(forged)
	_, err = verifier.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyVersionMismatch(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "id-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Version: domain.ClaimsVersion + 1,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	verifier := NewVerifier(testSecret, nil)
	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRevoked(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Hour)

	raw, claims, err := signer.Issue(testIdentity())
	require.NoError(t, err)

	t.Run("revocation after issuance rejects", func(t *testing.T) {
		revs := &fakeRevocations{at: map[string]time.Time{
			"id-123": claims.IssuedAt.Time.Add(time.Minute),
		}}
		_, err := NewVerifier(testSecret, revs).Verify(raw)
		assert.ErrorIs(t, err, ErrRevoked)
	})

	t.Run("revocation exactly at issuance rejects", func(t *testing.T) {
		revs := &fakeRevocations{at: map[string]time.Time{
			"id-123": claims.IssuedAt.Time,
		}}
		_, err := NewVerifier(testSecret, revs).Verify(raw)
		assert.ErrorIs(t, err, ErrRevoked)
	})

	t.Run("token issued after revocation passes", func(t *testing.T) {
		revs := &fakeRevocations{at: map[string]time.Time{
			"id-123": claims.IssuedAt.Time.Add(-time.Minute),
		}}
		got, err := NewVerifier(testSecret, revs).Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, "id-123", got.UID())
	})

	t.Run("revocation of another identity is ignored", func(t *testing.T) {
		revs := &fakeRevocations{at: map[string]time.Time{
			"someone-else": time.Now().Add(time.Hour),
		}}
		_, err := NewVerifier(testSecret, revs).Verify(raw)
		assert.NoError(t, err)
	})
}

func TestIssueCarriesOriginalIssuedAt(t *testing.T) {
	signer := NewSigner(testSecret, "academy", time.Hour)

	orig := time.Now().Add(-2 * time.Hour).Truncate(time.Second)
	_, claims, err := signer.Issue(testIdentity(), orig)
	require.NoError(t, err)

	assert.Equal(t, orig.Unix(), claims.OrigIssuedAt)
	assert.True(t, claims.IssuedAt.Time.After(orig))
}
