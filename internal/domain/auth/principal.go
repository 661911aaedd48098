package auth

import "github.com/seasonwork/seasonwork-backend-go/internal/domain/user"

// Principal is the authenticated caller, extracted once from the verified
// token at the handler boundary and passed explicitly into every service
// operation. Services never reach into request context for identity.
type Principal struct {
	UserID string
	Role   user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}
