package listing

import (
	"time"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
)

// Visibility policy. These functions are the single place where viewer
// trust decides what a request may see; handlers and repositories never
// re-check roles on their own.

// CanView reports whether the viewer may see the listing at all.
// A nil viewer is an unauthenticated request.
func CanView(l Listing, viewer *user.User) bool {
	if l.IsPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	if viewer.Role == user.RoleAdmin || viewer.ID == l.OwnerID {
		return true
	}
	return viewer.IsVerified()
}

// CanViewContact reports whether the viewer may see contact details.
// Contact details share the listing visibility gate.
func CanViewContact(l Listing, viewer *user.User) bool {
	return CanView(l, viewer)
}

// IsCurrentlyActive reports whether the listing accepts traffic at the
// given instant: active flag set and not past its expiry.
func IsCurrentlyActive(l Listing, now time.Time) bool {
	if !l.IsActive {
		return false
	}
	return l.ExpiresAt == nil || !l.ExpiresAt.Before(now)
}
