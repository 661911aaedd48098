package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/email"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/stripe"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
)

type BillingServiceImpl struct {
	db           *database.DB
	billingRepo  billing.Repository
	userRepo     user.Repository
	stripeClient *stripe.Client
	emailService email.EmailService
	stripeCfg    config.StripeConfig
}

func NewBillingService(
	db *database.DB,
	billingRepo billing.Repository,
	userRepo user.Repository,
	stripeClient *stripe.Client,
	emailService email.EmailService,
	stripeCfg config.StripeConfig,
) billing.Service {
	return &BillingServiceImpl{
		db:           db,
		billingRepo:  billingRepo,
		userRepo:     userRepo,
		stripeClient: stripeClient,
		emailService: emailService,
		stripeCfg:    stripeCfg,
	}
}

// GetAccount implements billing.Service. An employer who never purchased
// anything has no row yet and reads as a zero-credit account.
func (s *BillingServiceImpl) GetAccount(ctx context.Context, principal auth.Principal) (billing.AccountResponse, error) {
	account, err := s.billingRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.ToAccountResponse(billing.Account{UserID: principal.UserID}, time.Now()), nil
		}
		return billing.AccountResponse{}, fmt.Errorf("failed to get billing account: %w", err)
	}

	return billing.ToAccountResponse(account, time.Now()), nil
}

// CreateCheckoutSession implements billing.Service.
func (s *BillingServiceImpl) CreateCheckoutSession(ctx context.Context, principal auth.Principal, req billing.CheckoutSessionRequest) (billing.CheckoutSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return billing.CheckoutSessionResponse{}, err
	}
	if principal.Role != user.RoleEmployer && principal.Role != user.RoleAdmin {
		return billing.CheckoutSessionResponse{}, user.ErrEmployerRequired
	}
	if !s.stripeClient.Configured() {
		return billing.CheckoutSessionResponse{}, billing.ErrProviderNotConfigured
	}

	params := stripe.CheckoutSessionParams{
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata: map[string]string{
			billing.MetadataUserID:      principal.UserID,
			billing.MetadataBillingType: req.PurchaseType,
			billing.MetadataQuantity:    strconv.Itoa(req.Quantity),
		},
	}
	if params.SuccessURL == "" {
		params.SuccessURL = s.stripeCfg.CheckoutSuccessURL
	}
	if params.CancelURL == "" {
		params.CancelURL = s.stripeCfg.CheckoutCancelURL
	}

	switch req.PurchaseType {
	case billing.BillingTypeListing:
		params.Mode = "payment"
		params.PriceID = s.stripeCfg.PriceListing
		params.Quantity = int64(req.Quantity)
	case billing.BillingTypeSubscription:
		params.Mode = "subscription"
		params.PriceID = s.stripeCfg.PriceMonthly
		params.Quantity = 1
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, params)
	if err != nil {
		slog.Error("Failed to create checkout session", "user_id", principal.UserID, "error", err)
		return billing.CheckoutSessionResponse{}, billing.ErrProviderUnavailable
	}

	return billing.CheckoutSessionResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// HandleEvent implements billing.Service. The caller has already verified
// the provider signature against the raw payload. The provider event id
// is recorded in the same transaction as the ledger effect, so a
// redelivered event either skips entirely or applies exactly once.
func (s *BillingServiceImpl) HandleEvent(ctx context.Context, event billing.Event) error {
	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, event)
	case billing.EventInvoicePaid:
		return s.handleInvoicePaid(ctx, event)
	default:
		// Unknown event types are acknowledged so the provider stops
		// redelivering them.
		slog.Info("Ignoring unhandled webhook event type", "event_id", event.ID, "event_type", event.Type)
		return nil
	}
}

func (s *BillingServiceImpl) handleCheckoutCompleted(ctx context.Context, event billing.Event) error {
	metadata := event.Data.Object.Metadata
	billingType := metadata[billing.MetadataBillingType]

	switch billingType {
	case billing.BillingTypeListing:
		userID := metadata[billing.MetadataUserID]
		if userID == "" {
			slog.Warn("Checkout event missing user metadata", "event_id", event.ID)
			return nil
		}

		quantity := 1
		if raw := metadata[billing.MetadataQuantity]; raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				slog.Warn("Checkout event has invalid quantity, defaulting to 1", "event_id", event.ID, "quantity", raw)
			} else {
				quantity = parsed
			}
		}

		applied, err := s.applyOnce(ctx, event, func(tx pgx.Tx) error {
			return s.billingRepo.AddCredits(ctx, tx, userID, quantity)
		})
		if err != nil {
			return err
		}
		if applied {
			slog.Info("Granted listing credits", "user_id", userID, "quantity", quantity, "event_id", event.ID)
			s.notifyCreditsGranted(ctx, userID, quantity)
		}
		return nil

	case billing.BillingTypeSubscription:
		return s.extendFromSubscription(ctx, event)

	default:
		slog.Info("Ignoring checkout event with unknown billing type", "event_id", event.ID, "billing_type", billingType)
		return nil
	}
}

func (s *BillingServiceImpl) handleInvoicePaid(ctx context.Context, event billing.Event) error {
	if event.Data.Object.Subscription == nil {
		slog.Info("Ignoring invoice event without subscription", "event_id", event.ID)
		return nil
	}
	return s.extendFromSubscription(ctx, event)
}

// extendFromSubscription resolves the subscription referenced by the event
// and pushes the owner's active window forward to its period end.
func (s *BillingServiceImpl) extendFromSubscription(ctx context.Context, event billing.Event) error {
	subscriptionID := ""
	if event.Data.Object.Subscription != nil {
		subscriptionID = *event.Data.Object.Subscription
	}
	if subscriptionID == "" {
		slog.Warn("Subscription event missing subscription id", "event_id", event.ID)
		return nil
	}

	sub, err := s.stripeClient.GetSubscription(ctx, subscriptionID)
	if err != nil {
		slog.Error("Failed to resolve subscription", "subscription_id", subscriptionID, "error", err)
		return billing.ErrProviderUnavailable
	}

	userID := sub.Metadata[billing.MetadataUserID]
	if userID == "" {
		slog.Warn("Subscription has no user metadata", "subscription_id", subscriptionID, "event_id", event.ID)
		return nil
	}

	periodEnd := sub.PeriodEnd()
	applied, err := s.applyOnce(ctx, event, func(tx pgx.Tx) error {
		return s.billingRepo.ExtendActiveUntil(ctx, tx, userID, periodEnd)
	})
	if err != nil {
		return err
	}
	if applied {
		slog.Info("Extended subscription window", "user_id", userID, "active_until", periodEnd, "event_id", event.ID)
	}
	return nil
}

// applyOnce runs effect inside a transaction guarded by the event-id
// record. It reports whether the effect ran; a previously recorded event
// id commits nothing.
func (s *BillingServiceImpl) applyOnce(ctx context.Context, event billing.Event, effect func(tx pgx.Tx) error) (bool, error) {
	var applied bool
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		fresh, err := s.billingRepo.RecordEvent(ctx, tx, billing.WebhookEvent{
			EventID:   event.ID,
			EventType: event.Type,
		})
		if err != nil {
			return fmt.Errorf("failed to record webhook event: %w", err)
		}
		if !fresh {
			slog.Info("Skipping redelivered webhook event", "event_id", event.ID)
			return nil
		}

		applied = true
		return effect(tx)
	})
	return applied, err
}

// GrantListingCredits implements billing.Service.
func (s *BillingServiceImpl) GrantListingCredits(ctx context.Context, userID string, quantity int) error {
	if quantity < 1 {
		return billing.ErrInvalidQuantity
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return s.billingRepo.AddCredits(ctx, tx, userID, quantity)
	})
}

func (s *BillingServiceImpl) notifyCreditsGranted(ctx context.Context, userID string, quantity int) {
	buyer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to load buyer for credit notification", "user_id", userID, "error", err)
		return
	}
	if err := s.emailService.SendCreditsGranted(buyer.Email, quantity); err != nil {
		slog.Error("Failed to send credit notification email", "user_id", userID, "error", err)
	}
}
