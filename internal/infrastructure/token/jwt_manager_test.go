package token

import (
	"testing"
	"time"

	usecase "aiblog/backend/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestManager() *JWTManager {
	return NewJWTManager(testSecret, 7*24*time.Hour, "aiblog")
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager()

	claims := usecase.Claims{
		UserID:   "u1",
		Name:     "Alice",
		Username: "alice",
		Role:     "admin",
		Email:    "alice@example.com",
	}

	tokenString, err := m.Issue(claims)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := m.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, &claims, got)
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return issuedAt }

	tokenString, err := m.Issue(usecase.Claims{UserID: "u1"})
	require.NoError(t, err)

	// Still valid just inside the seven day window.
	m.nowFunc = func() time.Time { return issuedAt.Add(7*24*time.Hour - time.Minute) }
	_, err = m.Verify(tokenString)
	assert.NoError(t, err)

	// Rejected once the window has elapsed.
	m.nowFunc = func() time.Time { return issuedAt.Add(7*24*time.Hour + time.Minute) }
	_, err = m.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager()

	tokenString, err := m.Issue(usecase.Claims{UserID: "u1"})
	require.NoError(t, err)

	other := NewJWTManager("a-different-secret", 7*24*time.Hour, "aiblog")
	_, err = other.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyMalformed(t *testing.T) {
	m := newTestManager()

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tokenString)
		assert.Error(t, err, "token %q should be rejected", tokenString)
	}
}

func TestVerifyUnsignedToken(t *testing.T) {
	m := newTestManager()

	// Header {"alg":"none","typ":"JWT"} with an empty signature segment.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ1MSJ9."
	_, err := m.Verify(unsigned)
	assert.Error(t, err)
}
