package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFManager_RoundTrip(t *testing.T) {
	m := NewCSRFManager("csrf-secret", time.Hour)

	signed, nonce, err := m.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, nonce)

	got, err := m.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, nonce, got)
}

func TestCSRFManager_FreshNoncePerToken(t *testing.T) {
	m := NewCSRFManager("csrf-secret", time.Hour)

	_, first, err := m.Generate()
	require.NoError(t, err)
	_, second, err := m.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCSRFManager_WrongSecret(t *testing.T) {
	issuer := NewCSRFManager("secret-a", time.Hour)
	verifier := NewCSRFManager("secret-b", time.Hour)

	signed, _, err := issuer.Generate()
	require.NoError(t, err)

	_, err = verifier.Validate(signed)
	assert.Error(t, err)
}

func TestCSRFManager_RejectsBearerToken(t *testing.T) {
	// A bearer token signed with the same secret must not pass as a CSRF
	// token; the subject gate blocks token confusion.
	jwtManager := NewJWTManager("shared-secret", time.Hour, "realty")
	csrfManager := NewCSRFManager("shared-secret", time.Hour)

	signed, err := jwtManager.Generate(testIdentity(), "nonce-1")
	require.NoError(t, err)

	_, err = csrfManager.Validate(signed)
	assert.Error(t, err)
}

func TestCSRFManager_Expired(t *testing.T) {
	m := NewCSRFManager("csrf-secret", time.Hour)

	signed, _, err := m.Generate()
	require.NoError(t, err)

	m.nowFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Validate(signed)
	assert.Error(t, err)
}
