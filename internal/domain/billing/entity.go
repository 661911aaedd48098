package billing

import "time"

// Account is an employer's billing standing: prepaid listing credits plus
// an optional subscription window. Credits never go below zero and
// ActiveUntil only ever moves forward.
type Account struct {
	UserID         string
	ListingCredits int
	ActiveUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasActiveSubscription reports whether the subscription window covers now
func (a *Account) HasActiveSubscription(now time.Time) bool {
	return a.ActiveUntil != nil && !a.ActiveUntil.Before(now)
}

// WebhookEvent records a processed payment-provider event id so redelivered
// events are applied at most once.
type WebhookEvent struct {
	EventID    string
	EventType  string
	ReceivedAt time.Time
}
