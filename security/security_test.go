package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h1 := HashPassword("salt", "secret")
	h2 := HashPassword("salt", "secret")
	h3 := HashPassword("other", "secret")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3, "salt changes the digest")
	assert.Len(t, h1, 128, "hex-encoded SHA-512")
}

func TestIdentityTokenRoundTrip(t *testing.T) {
	settings := TokenSettings{
		Issuer:   "cardtime",
		Audience: "cardtime-api",
		SignKey:  "0123456789abcdef0123456789abcdef",
		Timeout:  time.Minute,
	}

	token, err := CreateIdentityToken("USER-1", settings)
	require.NoError(t, err)

	subject, err := ParseIdentityToken(token, settings)
	require.NoError(t, err)
	assert.Equal(t, "USER-1", subject)
}

func TestIdentityTokenRejections(t *testing.T) {
	settings := TokenSettings{
		Issuer:   "cardtime",
		Audience: "cardtime-api",
		SignKey:  "0123456789abcdef0123456789abcdef",
		Timeout:  time.Minute,
	}

	t.Run("wrong key", func(t *testing.T) {
		token, err := CreateIdentityToken("USER-1", settings)
		require.NoError(t, err)

		bad := settings
		bad.SignKey = "ffffffffffffffffffffffffffffffff"
		_, err = ParseIdentityToken(token, bad)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := settings
		short.Timeout = -time.Minute
		token, err := CreateIdentityToken("USER-1", short)
		require.NoError(t, err)

		_, err = ParseIdentityToken(token, settings)
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, err := CreateIdentityToken("USER-1", settings)
		require.NoError(t, err)

		other := settings
		other.Audience = "someone-else"
		_, err = ParseIdentityToken(token, other)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseIdentityToken("not.a.token", settings)
		assert.Error(t, err)
	})
}
