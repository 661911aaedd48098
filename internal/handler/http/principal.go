package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
)

// principalFromRequest extracts the authenticated caller from the verified
// token claims. Routes behind AuthRequired can rely on it succeeding.
func principalFromRequest(r *http.Request) (auth.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Principal{}, auth.ErrNotAuthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || !user.ValidRole(role) {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	return auth.Principal{
		UserID: userID,
		Role:   user.Role(role),
	}, nil
}

// optionalPrincipal returns the caller when a valid token accompanied the
// request and nil otherwise. Public listing routes accept both.
func optionalPrincipal(r *http.Request) *auth.Principal {
	principal, err := principalFromRequest(r)
	if err != nil {
		return nil
	}
	return &principal
}
