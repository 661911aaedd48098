package listing

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository handles listing data operations
type Repository interface {
	// GetByID retrieves a listing by its ID
	GetByID(ctx context.Context, id string) (Listing, error)

	// Create inserts a new listing inside the given transaction so the
	// insert can share a transaction with the billing decrement
	Create(ctx context.Context, tx pgx.Tx, l Listing) (Listing, error)

	// Update persists changes to an existing listing
	Update(ctx context.Context, l Listing) error

	// Search retrieves listings matching the filters, newest first.
	// Visibility is NOT applied here; callers filter rows through the
	// access policy before serialization.
	Search(ctx context.Context, filters SearchFilters) ([]Listing, error)
}

// ApplicationRepository handles worker application data operations
type ApplicationRepository interface {
	// Create inserts a new application
	Create(ctx context.Context, a Application) (Application, error)

	// Exists reports whether the user already applied to the listing
	Exists(ctx context.Context, userID, listingID string) (bool, error)

	// ListByListingID retrieves applications for a listing, oldest first
	ListByListingID(ctx context.Context, listingID string) ([]Application, error)
}
