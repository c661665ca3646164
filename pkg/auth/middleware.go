package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/elevatex/pkg/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -source=middleware.go -destination=mock_middleware.go -package=auth

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	ClaimsKey ContextKey = "claims"
)

// TokenDenylist reports tokens revoked before they expire.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware accepts any valid, unexpired token.
func AuthMiddleware(next http.Handler) http.Handler {
	return Authenticator(nil)(next)
}

// Authenticator validates the bearer token and rejects tokens on the denylist.
func Authenticator(denylist TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			jwtService := &JWTService{}
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if denylist != nil && claims.Id != "" {
				revoked, err := denylist.IsRevoked(r.Context(), claims.Id)
				if err != nil {
					zap.L().Error("can't check token denylist", zap.Error(err))
					utils.RespondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
					return
				}
				if revoked {
					utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id put in the context by AuthMiddleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok && id > 0
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok && claims != nil
}
