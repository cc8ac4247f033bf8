package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-contacts-api/internal/config"
)

func newTestProvider(t *testing.T, accessTTL time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
		VerifyTokenTTL:  30 * time.Minute,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 30*time.Minute)

	token, err := p.Access("a@b.com")
	require.NoError(t, err)

	claims, err := p.Verify(token, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.Equal(t, ScopeAccess, claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_UniqueTokenIDs(t *testing.T) {
	p := newTestProvider(t, 30*time.Minute)

	t1, err := p.Verification("a@b.com")
	require.NoError(t, err)
	t2, err := p.Verification("a@b.com")
	require.NoError(t, err)

	c1, err := p.Verify(t1, ScopeVerify)
	require.NoError(t, err)
	c2, err := p.Verify(t2, ScopeVerify)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestVerify_ScopeMismatch(t *testing.T) {
	p := newTestProvider(t, 30*time.Minute)

	token, err := p.Refresh("a@b.com")
	require.NoError(t, err)

	_, err = p.Verify(token, ScopeAccess)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, -time.Minute) // already expired at issuance

	token, err := p.Access("a@b.com")
	require.NoError(t, err)

	_, err = p.Verify(token, ScopeAccess)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t, 30*time.Minute)
	token, err := p.Access("a@b.com")
	require.NoError(t, err)

	other, err := NewProvider(&config.Config{JWTSecret: "other-secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	_, err = other.Verify(token, ScopeAccess)
	assert.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	p := newTestProvider(t, 30*time.Minute)
	_, err := p.Verify("not-a-token", ScopeAccess)
	assert.Error(t, err)
}
