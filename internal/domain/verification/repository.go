package verification

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository handles verification document data operations
type Repository interface {
	// GetByID retrieves a document by its ID
	GetByID(ctx context.Context, id string) (Document, error)

	// GetLatestByUserID retrieves the most recently created document for a
	// user, or pgx.ErrNoRows when the user never submitted one.
	GetLatestByUserID(ctx context.Context, userID string) (Document, error)

	// ListByUserID retrieves a user's documents, newest first
	ListByUserID(ctx context.Context, userID string) ([]Document, error)

	// Create inserts a new document inside the given transaction
	Create(ctx context.Context, tx pgx.Tx, doc Document) (Document, error)

	// Resolve records a review decision inside the given transaction
	Resolve(ctx context.Context, tx pgx.Tx, id string, decision Decision, reviewerID string, note *string) (Document, error)

	// ListPending retrieves pending documents ordered by creation time
	// ascending (oldest submissions reviewed first)
	ListPending(ctx context.Context) ([]Document, error)
}
