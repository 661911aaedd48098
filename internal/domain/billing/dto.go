package billing

import (
	"time"

	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
)

// Event is the provider webhook envelope after signature verification.
// Only the fields this system consumes are decoded.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object EventObject `json:"object"`
}

type EventObject struct {
	Metadata     map[string]string `json:"metadata"`
	Subscription *string           `json:"subscription"`
}

// Metadata keys set when the checkout session is created
const (
	MetadataUserID      = "user_id"
	MetadataBillingType = "billing_type"
	MetadataQuantity    = "quantity"

	BillingTypeListing      = "listing"
	BillingTypeSubscription = "subscription"

	EventCheckoutCompleted = "checkout.session.completed"
	EventInvoicePaid       = "invoice.paid"
)

type AccountResponse struct {
	UserID             string  `json:"user_id"`
	ListingCredits     int     `json:"listing_credits"`
	ActiveUntil        *string `json:"active_until"`
	SubscriptionActive bool    `json:"subscription_active"`
}

func ToAccountResponse(a Account, now time.Time) AccountResponse {
	resp := AccountResponse{
		UserID:             a.UserID,
		ListingCredits:     a.ListingCredits,
		SubscriptionActive: a.HasActiveSubscription(now),
	}
	if a.ActiveUntil != nil {
		formatted := a.ActiveUntil.Format(time.RFC3339)
		resp.ActiveUntil = &formatted
	}
	return resp
}

type CheckoutSessionRequest struct {
	PurchaseType string `json:"purchase_type"`
	Quantity     int    `json:"quantity"`
	SuccessURL   string `json:"success_url"`
	CancelURL    string `json:"cancel_url"`
}

func (r *CheckoutSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PurchaseType == "" {
		r.PurchaseType = BillingTypeListing
	}
	if r.PurchaseType != BillingTypeListing && r.PurchaseType != BillingTypeSubscription {
		errs = append(errs, validator.ValidationError{
			Field:   "purchase_type",
			Message: "purchase_type must be listing or subscription",
		})
	}
	if r.PurchaseType == BillingTypeListing {
		if r.Quantity == 0 {
			r.Quantity = 1
		}
		if r.Quantity < 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "quantity",
				Message: "quantity must be greater than zero",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
