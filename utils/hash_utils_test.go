package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSaltUnique(t *testing.T) {
	first, err := GenerateSalt()
	require.NoError(t, err)
	second, err := GenerateSalt()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	first, err := HashPassword("Passw0rd!", salt)
	require.NoError(t, err)
	second, err := HashPassword("Passw0rd!", salt)
	require.NoError(t, err)

	assert.Equal(t, first, second, "相同密码和盐值应得到相同摘要")
}

func TestHashPasswordSaltMatters(t *testing.T) {
	saltA, err := GenerateSalt()
	require.NoError(t, err)
	saltB, err := GenerateSalt()
	require.NoError(t, err)

	digestA, err := HashPassword("Passw0rd!", saltA)
	require.NoError(t, err)
	digestB, err := HashPassword("Passw0rd!", saltB)
	require.NoError(t, err)

	assert.NotEqual(t, digestA, digestB)
}

func TestCheckPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	digest, err := HashPassword("Passw0rd!", salt)
	require.NoError(t, err)

	assert.True(t, CheckPassword("Passw0rd!", salt, digest))
	assert.False(t, CheckPassword("wrongPass1!", salt, digest))
	assert.False(t, CheckPassword("Passw0rd!", "not-base64!!", digest))
}
