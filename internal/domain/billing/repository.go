package billing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Repository handles billing account data operations
type Repository interface {
	// GetByUserID retrieves an account, or pgx.ErrNoRows when absent
	GetByUserID(ctx context.Context, userID string) (Account, error)

	// GetForUpdate locks the account row for the duration of the
	// transaction, creating a zero-credit row first when absent. This is
	// the serialization point for the check-then-decrement sequence.
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID string) (Account, error)

	// ConsumeCredit decrements listing_credits by one inside the
	// transaction holding the row lock. Fails if credits would go negative.
	ConsumeCredit(ctx context.Context, tx pgx.Tx, userID string) error

	// AddCredits adds quantity credits, creating the account when absent
	AddCredits(ctx context.Context, tx pgx.Tx, userID string, quantity int) error

	// ExtendActiveUntil sets active_until to the later of its current
	// value and periodEnd, creating the account when absent
	ExtendActiveUntil(ctx context.Context, tx pgx.Tx, userID string, periodEnd time.Time) error

	// RecordEvent inserts the provider event id; returns false when the id
	// was already recorded (redelivery)
	RecordEvent(ctx context.Context, tx pgx.Tx, event WebhookEvent) (bool, error)
}
