package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/services"
)

// Principal is the authenticated caller, taken from a verified access token.
type Principal struct {
	UserID int
	Email  string
	Role   string
}

type TokenVerifier interface {
	Verify(token string, kind services.TokenKind) (*services.Claims, error)
}

// Authentication verifies the bearer access token and attaches the Principal.
// A missing or malformed header is 401; a token that fails verification is 403.
func Authentication(tokens TokenVerifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "missing_authorization", "Authorization header is required")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				respondWithError(w, http.StatusUnauthorized, "invalid_authorization", "Invalid authorization header format")
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(tokenString), services.AccessToken)
			if err != nil {
				logger.Warn().Err(err).Str("request_id", GetRequestID(r.Context())).Msg("Invalid token")
				respondWithError(w, http.StatusForbidden, "invalid_token", "Invalid or expired token")
				return
			}
			if claims.UserID <= 0 || claims.Role == "" {
				respondWithError(w, http.StatusUnauthorized, "invalid_claims", "Token is missing required claims")
				return
			}

			p := Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole admits principals whose role equals one of allowedRoles.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipal(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
				return
			}

			for _, role := range allowedRoles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
