package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/auth"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route on the role permission table. Finer checks
// that depend on the resource (assignee, self) stay in the services via
// user.Allows.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok || role == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !user.HasPermission(user.Role(role), permission) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly shortcuts RequirePermission for destructive directory routes.
func AdminOnly(next http.Handler) http.Handler {
	return RequirePermission(user.PermissionEmployeeDelete)(next)
}
