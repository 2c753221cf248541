// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := VerifyPassword("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestRehashOnOutdatedParams(t *testing.T) {
	weak := argonParams{memory: 8 * 1024, time: 1, threads: 1, keyLen: 32}
	salt := make([]byte, saltLength)
	stored := weak.encode(salt, weak.derive("s3cret-password", salt))

	ok, upgraded, err := VerifyPasswordWithRehash("s3cret-password", stored)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotEmpty(t, upgraded)
	assert.Contains(t, upgraded, "m=65536")

	ok, upgraded, err = VerifyPasswordWithRehash("s3cret-password", upgraded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, upgraded)

	ok, upgraded, err = VerifyPasswordWithRehash("wrong-password", stored)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, upgraded)
}

func TestTimingSafeUnknownUser(t *testing.T) {
	ok, upgraded, err := VerifyPasswordTimingSafe("anything", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, upgraded)
}

func TestMalformedHashes(t *testing.T) {
	good, err := HashPassword("x")
	require.NoError(t, err)
	parts := strings.Split(good, "$")

	cases := map[string]string{
		"empty":         "",
		"bcrypt":        "$2a$10$abcdefghijklmnopqrstuu",
		"wrong version": strings.Replace(good, "v=19", "v=16", 1),
		"bad params":    strings.Replace(good, parts[3], "m=x,t=1,p=4", 1),
		"bad salt":      strings.Replace(good, parts[4], "!!!", 1),
		"empty key":     "$argon2id$v=19$m=65536,t=1,p=4$" + parts[4] + "$",
	}

	for name, hash := range cases {
		_, err := VerifyPassword("x", hash)
		assert.ErrorIs(t, err, ErrMalformedHash, name)
	}
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(48)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 48)

	other, err := GenerateSecureToken(48)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
