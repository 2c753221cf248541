// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/campaign-studio/internal/config"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	claimType = "type"
)

// Claims are the verified contents of an access or refresh token.
type Claims struct {
	UserID    string
	TokenID   string
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken is a signed token together with the identifiers needed to
// revoke it later.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

type TokenManager struct {
	alg    jwa.SignatureAlgorithm
	secret []byte
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	alg, err := signatureAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}

	return &TokenManager{
		alg:    alg,
		secret: []byte(cfg.SecretKey),
		config: cfg,
		now:    time.Now,
	}, nil
}

func signatureAlgorithm(name string) (jwa.SignatureAlgorithm, error) {
	switch strings.ToUpper(name) {
	case "", "HS256":
		return jwa.HS256(), nil
	case "HS384":
		return jwa.HS384(), nil
	case "HS512":
		return jwa.HS512(), nil
	default:
		return jwa.SignatureAlgorithm{}, fmt.Errorf("unsupported jwt algorithm %q", name)
	}
}

func (m *TokenManager) Algorithm() string {
	return m.alg.String()
}

func (m *TokenManager) AccessTokenTTL() time.Duration {
	return m.config.AccessTokenExpire
}

func (m *TokenManager) IssueAccessToken(userID string) (*IssuedToken, error) {
	return m.issue(userID, TokenTypeAccess, m.config.AccessTokenExpire)
}

func (m *TokenManager) IssueRefreshToken(userID string) (*IssuedToken, error) {
	return m.issue(userID, TokenTypeRefresh, m.config.RefreshTokenExpire)
}

func (m *TokenManager) issue(
	userID, tokenType string,
	ttl time.Duration,
) (*IssuedToken, error) {
	now := m.now()
	jti := uuid.New().String()
	expiresAt := now.Add(ttl)

	token, err := jwt.NewBuilder().
		JwtID(jti).
		Issuer(m.config.Issuer).
		Subject(userID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim(claimType, tokenType).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(m.alg, m.secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

// Decode verifies signature, issuer and time claims. Every failure wraps
// core.ErrTokenInvalid; callers must not distinguish between them.
func (m *TokenManager) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(m.alg, m.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("decode token: missing subject: %w", core.ErrTokenInvalid)
	}

	jti, ok := token.JwtID()
	if !ok || jti == "" {
		return nil, fmt.Errorf("decode token: missing jti: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get(claimType, &tokenType); err != nil {
		return nil, fmt.Errorf("decode token: missing type: %w", core.ErrTokenInvalid)
	}

	exp, _ := token.Expiration()
	iat, _ := token.IssuedAt()

	return &Claims{
		UserID:    subject,
		TokenID:   jti,
		Type:      tokenType,
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}

// DecodeAs is Decode plus a check on the type discriminator, so a refresh
// token cannot be replayed as an access token or the other way round.
func (m *TokenManager) DecodeAs(tokenString, tokenType string) (*Claims, error) {
	claims, err := m.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenType {
		return nil, fmt.Errorf(
			"decode token: expected %s token: %w",
			tokenType,
			core.ErrTokenInvalid,
		)
	}

	return claims, nil
}
