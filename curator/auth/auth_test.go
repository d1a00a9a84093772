package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	for _, password := range []string{"pw123", "корова", "a much longer password with spaces"} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)

		assert.True(t, CheckPassword(password, hash))
		assert.False(t, CheckPassword("wrong", hash))
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("pw123")
	require.NoError(t, err)
	h2, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("pw123", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("pw123", ""))
}

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, time.Hour)
	require.NoError(t, err)

	subject, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestValidateToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", []byte("secret-1"), time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, []byte("secret-2"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := ValidateToken("not.a.token", []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("", []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
