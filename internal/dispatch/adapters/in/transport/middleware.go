package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/auth"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

// RequireRole проверяет JWT и требует конкретную роль
func RequireRole(jwtService *auth.JWTService, role string, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn(logger.Entry{
					Action:  "jwt_middleware_missing_token",
					Message: "authorization header missing",
				})
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn(logger.Entry{
					Action:  "jwt_middleware_invalid_format",
					Message: "invalid authorization header format",
				})
				respondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				log.Warn(logger.Entry{
					Action:  "jwt_middleware_invalid_token",
					Message: err.Error(),
				})
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			// Проверяем роль
			if claims.Role != role {
				log.Warn(logger.Entry{
					Action:  "jwt_middleware_forbidden_role",
					Message: "insufficient role",
					Additional: map[string]any{
						"user_id": claims.UserID,
						"role":    claims.Role,
					},
				})
				respondError(w, http.StatusForbidden, "access denied: "+role+" role required")
				return
			}

			// Добавляем user_id и роль в контекст
			ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, contextKeyRole, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserIDFromContext извлекает user_id из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	return userID, ok
}
