package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
)

type billingRepositoryImpl struct {
	db *database.DB
}

func NewBillingRepository(db *database.DB) billing.Repository {
	return &billingRepositoryImpl{db: db}
}

const accountColumns = `user_id, listing_credits, active_until, created_at, updated_at`

func scanAccount(row pgx.Row) (billing.Account, error) {
	var account billing.Account
	err := row.Scan(
		&account.UserID,
		&account.ListingCredits,
		&account.ActiveUntil,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return billing.Account{}, err
	}
	return account, nil
}

// GetByUserID implements billing.Repository.
func (r *billingRepositoryImpl) GetByUserID(ctx context.Context, userID string) (billing.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM employer_accounts
		WHERE user_id = $1
	`

	return scanAccount(r.db.Pool.QueryRow(ctx, query, userID))
}

// GetForUpdate implements billing.Repository. The row lock is held until
// the surrounding transaction commits, so concurrent creations for the
// same employer serialize here.
func (r *billingRepositoryImpl) GetForUpdate(ctx context.Context, tx pgx.Tx, userID string) (billing.Account, error) {
	ensureQuery := `
		INSERT INTO employer_accounts (user_id, listing_credits)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, ensureQuery, userID); err != nil {
		return billing.Account{}, err
	}

	query := `
		SELECT ` + accountColumns + `
		FROM employer_accounts
		WHERE user_id = $1
		FOR UPDATE
	`

	return scanAccount(tx.QueryRow(ctx, query, userID))
}

// ConsumeCredit implements billing.Repository.
func (r *billingRepositoryImpl) ConsumeCredit(ctx context.Context, tx pgx.Tx, userID string) error {
	query := `
		UPDATE employer_accounts
		SET listing_credits = listing_credits - 1, updated_at = NOW()
		WHERE user_id = $1 AND listing_credits > 0
	`

	tag, err := tx.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return billing.ErrPaymentRequired
	}
	return nil
}

// AddCredits implements billing.Repository.
func (r *billingRepositoryImpl) AddCredits(ctx context.Context, tx pgx.Tx, userID string, quantity int) error {
	query := `
		INSERT INTO employer_accounts (user_id, listing_credits)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET listing_credits = employer_accounts.listing_credits + EXCLUDED.listing_credits,
			updated_at = NOW()
	`

	_, err := tx.Exec(ctx, query, userID, quantity)
	return err
}

// ExtendActiveUntil implements billing.Repository.
func (r *billingRepositoryImpl) ExtendActiveUntil(ctx context.Context, tx pgx.Tx, userID string, periodEnd time.Time) error {
	query := `
		INSERT INTO employer_accounts (user_id, listing_credits, active_until)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET active_until = GREATEST(COALESCE(employer_accounts.active_until, EXCLUDED.active_until), EXCLUDED.active_until),
			updated_at = NOW()
	`

	_, err := tx.Exec(ctx, query, userID, periodEnd)
	return err
}

// RecordEvent implements billing.Repository. A duplicate event id hits
// the primary key and reports false without failing the transaction.
func (r *billingRepositoryImpl) RecordEvent(ctx context.Context, tx pgx.Tx, event billing.WebhookEvent) (bool, error) {
	query := `
		INSERT INTO webhook_events (event_id, event_type)
		VALUES ($1, $2)
		ON CONFLICT (event_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, query, event.EventID, event.EventType)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
