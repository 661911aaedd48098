package billing

import (
	"context"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
)

// Service handles the billing ledger business logic
type Service interface {
	// GetAccount returns the caller's own billing standing
	GetAccount(ctx context.Context, principal auth.Principal) (AccountResponse, error)

	// CreateCheckoutSession starts a provider checkout for credits or a
	// subscription. Requires a configured provider.
	CreateCheckoutSession(ctx context.Context, principal auth.Principal, req CheckoutSessionRequest) (CheckoutSessionResponse, error)

	// HandleEvent applies a verified provider event to the ledger.
	// Redelivered events (same provider id) are applied at most once.
	HandleEvent(ctx context.Context, event Event) error

	// GrantListingCredits adds credits to an employer's account
	GrantListingCredits(ctx context.Context, userID string, quantity int) error
}
