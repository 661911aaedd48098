package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
)

func TestAuthorizeListingCreation_AdminBypass(t *testing.T) {
	decision := AuthorizeListingCreation(Account{}, user.RoleAdmin, time.Now())

	assert.True(t, decision.Allowed)
	assert.False(t, decision.ConsumesCredit, "admin creations never consume credits")
}

func TestAuthorizeListingCreation_ActiveSubscription(t *testing.T) {
	now := time.Now()
	until := now.Add(24 * time.Hour)
	account := Account{UserID: "e1", ListingCredits: 3, ActiveUntil: &until}

	decision := AuthorizeListingCreation(account, user.RoleEmployer, now)

	assert.True(t, decision.Allowed)
	assert.False(t, decision.ConsumesCredit, "subscription window must be preferred over credits")
}

func TestAuthorizeListingCreation_ExpiredSubscriptionFallsBackToCredits(t *testing.T) {
	now := time.Now()
	until := now.Add(-time.Minute)
	account := Account{UserID: "e1", ListingCredits: 1, ActiveUntil: &until}

	decision := AuthorizeListingCreation(account, user.RoleEmployer, now)

	assert.True(t, decision.Allowed)
	assert.True(t, decision.ConsumesCredit)
}

func TestAuthorizeListingCreation_CreditsOnly(t *testing.T) {
	account := Account{UserID: "e1", ListingCredits: 2}

	decision := AuthorizeListingCreation(account, user.RoleEmployer, time.Now())

	assert.True(t, decision.Allowed)
	assert.True(t, decision.ConsumesCredit)
}

func TestAuthorizeListingCreation_Denied(t *testing.T) {
	decision := AuthorizeListingCreation(Account{UserID: "e1"}, user.RoleEmployer, time.Now())

	assert.False(t, decision.Allowed)
	assert.False(t, decision.ConsumesCredit)
}

func TestHasActiveSubscription_BoundaryInstant(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	account := Account{ActiveUntil: &now}

	assert.True(t, account.HasActiveSubscription(now), "window is inclusive of its end instant")
	assert.False(t, account.HasActiveSubscription(now.Add(time.Second)))
}
