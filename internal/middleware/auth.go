// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/audit"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type contextKey string

const ClaimsKey contextKey = "jwt_claims"

// AccessTokenClaims is what the authenticator needs from a verified
// access token.
type AccessTokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenVerifier checks signature, expiry, token type and revocation.
type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// IdentityLoader resolves a token subject to an active user.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error)
}

// Authenticator requires a valid access token whose subject is an active
// user. Every failure produces the same 401 so callers cannot tell which
// check rejected them.
func Authenticator(
	verifier TokenVerifier,
	identities IdentityLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				slog.Debug("access token rejected", "error", err)
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			identity, err := identities.LoadIdentity(r.Context(), claims.UserID)
			if err != nil {
				slog.Debug("token subject rejected", "error", err, "user_id", claims.UserID)
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := authz.WithIdentity(r.Context(), identity)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			audit.SetActor(ctx, identity.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on role membership.
func RequireRole(allowed authz.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authz.FromContext(r.Context())
			if !ok {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			if err := authz.RequireRole(identity, allowed); err != nil {
				core.HandleError(w, err, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Require gates a route on the role part of the policy rule for res/op.
// Ownership is checked later by the service, once the resource is loaded.
func Require(
	policy authz.Policy,
	res authz.Resource,
	op authz.Operation,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authz.FromContext(r.Context())
			if !ok {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			if err := policy.Gate(identity, res, op); err != nil {
				core.HandleError(w, err, string(res))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(authz.AdminRoles)(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetUserID(ctx context.Context) string {
	if id, ok := authz.FromContext(ctx); ok {
		return id.UserID
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}
