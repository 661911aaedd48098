package user

import "time"

type Role string

const (
	RoleWorker   Role = "worker"   // Applies to listings, uploads verification documents
	RoleEmployer Role = "employer" // Creates listings, holds a billing account
	RoleAdmin    Role = "admin"    // Reviews documents, bypasses visibility and billing gates
)

// ValidRole reports whether the given string is a known role.
// Roles arriving from requests or token claims must pass through here
// before being treated as a Role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleWorker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusPending    VerificationStatus = "pending"
	StatusApproved   VerificationStatus = "approved"
	StatusRejected   VerificationStatus = "rejected"
)

type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               Role
	VerificationStatus VerificationStatus
	IsActive           bool
	CreatedAt          time.Time
}

// IsVerified is derived from VerificationStatus; the two are never stored
// separately so they cannot disagree.
func (u *User) IsVerified() bool {
	return u.VerificationStatus == StatusApproved
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish checks if user may create listings at all (billing aside)
func (u *User) CanPublish() bool {
	return u.Role == RoleEmployer || u.Role == RoleAdmin
}
