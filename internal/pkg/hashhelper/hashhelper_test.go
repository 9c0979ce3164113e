package hashhelper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstepanov/warehouse-api/internal/pkg/hashhelper"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := hashhelper.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	ok, err := hashhelper.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hashhelper.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := hashhelper.HashPassword("password123")
	require.NoError(t, err)
	second, err := hashhelper.HashPassword("password123")
	require.NoError(t, err)

	// Different salts, both must still verify.
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := hashhelper.VerifyPassword("password123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyPassword_CorruptHash(t *testing.T) {
	ok, err := hashhelper.VerifyPassword("password123", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, hashhelper.ErrCorruptHash)
}
