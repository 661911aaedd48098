package listing

import (
	"context"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
)

// Service handles listing business logic
type Service interface {
	// Create authorizes the caller against the billing ledger and inserts
	// the listing. The credit decrement and the insert commit atomically.
	Create(ctx context.Context, principal auth.Principal, req CreateRequest) (Response, error)

	// Get returns one listing if the caller passes the visibility gate
	Get(ctx context.Context, principal *auth.Principal, id string) (Response, error)

	// Update applies a partial update; owner or admin only
	Update(ctx context.Context, principal auth.Principal, id string, req UpdateRequest) (Response, error)

	// Search returns listings matching the filters, with rows the caller
	// may not view dropped from the result set
	Search(ctx context.Context, principal *auth.Principal, filters SearchFilters) ([]Response, error)

	// Apply records a worker application to a visible, active listing
	Apply(ctx context.Context, principal auth.Principal, listingID string, req ApplyRequest) (ApplicationResponse, error)

	// ListApplications returns applications for the caller's own listing
	ListApplications(ctx context.Context, principal auth.Principal, listingID string) ([]ApplicationResponse, error)
}
