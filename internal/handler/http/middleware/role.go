package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/handler/http/response"
)

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasRole(r, user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EmployerOnly requires the employer or admin role
func EmployerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasRole(r, user.RoleEmployer) && !hasRole(r, user.RoleAdmin) {
			response.HandleError(w, user.ErrEmployerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasRole(r *http.Request, want user.Role) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	role, ok := claims["role"].(string)
	return ok && user.Role(role) == want
}
