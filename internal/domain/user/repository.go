package user

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository handles user data operations
type Repository interface {
	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create inserts a new user and returns it with generated fields
	Create(ctx context.Context, u User) (User, error)

	// UpdateVerificationStatus sets the user's verification status.
	// Only the verification workflow calls this.
	UpdateVerificationStatus(ctx context.Context, tx pgx.Tx, id string, status VerificationStatus) error
}
