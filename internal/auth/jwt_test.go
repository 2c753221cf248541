// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/config"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:          "a-test-secret-that-is-long-enough-for-hs256",
		Algorithm:          "HS256",
		AccessTokenExpire:  30 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "campaign-studio",
	}
}

func newTestTokens(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	return m
}

func TestIssueAndDecode(t *testing.T) {
	m := newTestTokens(t)

	issued, err := m.IssueAccessToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)

	claims, err := m.DecodeAs(issued.Token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := newTestTokens(t)

	refresh, err := m.IssueRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.DecodeAs(refresh.Token, TokenTypeAccess)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	access, err := m.IssueAccessToken("user-1")
	require.NoError(t, err)

	_, err = m.DecodeAs(access.Token, TokenTypeRefresh)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newTestTokens(t)

	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	issued, err := m.IssueAccessToken("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Decode(issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestDecodeRejectsForeignTokens(t *testing.T) {
	m := newTestTokens(t)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "a-different-secret-entirely-for-this-test"
	other, err := NewTokenManager(otherCfg)
	require.NoError(t, err)

	forged, err := other.IssueAccessToken("user-1")
	require.NoError(t, err)

	_, err = m.Decode(forged.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "someone-else"
	elsewhere, err := NewTokenManager(otherIssuer)
	require.NoError(t, err)

	token, err := elsewhere.IssueAccessToken("user-1")
	require.NoError(t, err)

	_, err = m.Decode(token.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = m.Decode("not.a.jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestNewTokenManagerValidation(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Algorithm = "RS256"
	_, err := NewTokenManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.SecretKey = ""
	_, err = NewTokenManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.Algorithm = "hs512"
	m, err := NewTokenManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, "HS512", m.Algorithm())
}
