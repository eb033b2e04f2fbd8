package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SeasonalService/internal/api/handlers"
	"github.com/m04kA/SMC-SeasonalService/internal/domain"
)

type ctxKey int

const actorKey ctxKey = iota

// Auth middleware проверяет Bearer JWT (HS256) и кладет Actor в context запроса.
// Токен должен содержать claims "sub" (ID пользователя) и "role"
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondError(w, http.StatusUnauthorized, "invalid claims")
				return
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				handlers.RespondError(w, http.StatusUnauthorized, "invalid claims")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return domain.Actor{}, err
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.Actor{}, err
	}

	role := domain.RoleReserver
	if raw, ok := claims["role"].(string); ok && raw != "" {
		role = domain.UserRole(raw)
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

// WithActor кладет Actor в context
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext достает Actor из context
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
