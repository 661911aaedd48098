package billing

import (
	"time"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
)

// Decision is the ledger's answer to a listing-creation attempt
type Decision struct {
	Allowed        bool
	ConsumesCredit bool
}

// AuthorizeListingCreation evaluates the publish gate for one attempt.
// The order is fixed: admin bypass, then subscription window, then prepaid
// credits. A consuming decision must be committed in the same transaction
// that holds the account row lock and inserts the listing; callers never
// act on a stale decision.
func AuthorizeListingCreation(account Account, role user.Role, now time.Time) Decision {
	if role == user.RoleAdmin {
		return Decision{Allowed: true}
	}
	if account.HasActiveSubscription(now) {
		return Decision{Allowed: true}
	}
	if account.ListingCredits > 0 {
		return Decision{Allowed: true, ConsumesCredit: true}
	}
	return Decision{}
}
