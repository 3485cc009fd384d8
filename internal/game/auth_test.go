package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "starrunner", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue("pilot-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	playerID, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "pilot-1", playerID)
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "starrunner", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other", "starrunner", time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.Issue("pilot-1")
	require.NoError(t, err)

	_, err = issuer.Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuerExpiry(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "starrunner", time.Hour)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Issue("pilot-1")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuerNeedsSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "starrunner", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
