package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/handler/http/response"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/stripe"
)

const maxWebhookBodyBytes = 1 << 20

type BillingHandler interface {
	GetAccount(w http.ResponseWriter, r *http.Request)
	CreateCheckoutSession(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type BillingHandlerImpl struct {
	billingService  billing.Service
	webhookVerifier *stripe.WebhookVerifier
}

func NewBillingHandler(billingService billing.Service, webhookVerifier *stripe.WebhookVerifier) BillingHandler {
	return &BillingHandlerImpl{
		billingService:  billingService,
		webhookVerifier: webhookVerifier,
	}
}

// GetAccount implements BillingHandler.
func (h *BillingHandlerImpl) GetAccount(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	account, err := h.billingService.GetAccount(r.Context(), principal)
	if err != nil {
		slog.Error("GetAccount service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, account)
}

// CreateCheckoutSession implements BillingHandler.
func (h *BillingHandlerImpl) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req billing.CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCheckoutSession decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := h.billingService.CreateCheckoutSession(r.Context(), principal, req)
	if err != nil {
		slog.Error("CreateCheckoutSession service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checkout session created", session)
}

// Webhook implements BillingHandler. The signature is checked against the
// raw body before any parsing; unverifiable deliveries are rejected and
// never touch the ledger.
func (h *BillingHandlerImpl) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		slog.Error("Webhook body read error", "error", err)
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	if !h.webhookVerifier.VerifySignature(payload, r.Header.Get("Stripe-Signature")) {
		slog.Warn("Webhook signature verification failed", "remote_addr", r.RemoteAddr)
		response.HandleError(w, billing.ErrInvalidSignature)
		return
	}

	var event billing.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		slog.Error("Webhook decode error", "error", err)
		response.BadRequest(w, "Invalid event payload", nil)
		return
	}
	if event.ID == "" || event.Type == "" {
		response.BadRequest(w, "Event id and type are required", nil)
		return
	}

	if err := h.billingService.HandleEvent(r.Context(), event); err != nil {
		slog.Error("Webhook service error", "event_id", event.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"received": true})
}
