package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/handler/http/response"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
)

type ListingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
}

type ListingHandlerImpl struct {
	listingService listing.Service
}

func NewListingHandler(listingService listing.Service) ListingHandler {
	return &ListingHandlerImpl{listingService: listingService}
}

// Create implements ListingHandler.
func (h *ListingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req listing.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create listing decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.listingService.Create(r.Context(), principal, req)
	if err != nil {
		slog.Error("Create listing service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Listing created", created)
}

// Get implements ListingHandler.
func (h *ListingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	found, err := h.listingService.Get(r.Context(), optionalPrincipal(r), listingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements ListingHandler.
func (h *ListingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req listing.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update listing decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	listingID := chi.URLParam(r, "listingID")

	updated, err := h.listingService.Update(r.Context(), principal, listingID, req)
	if err != nil {
		slog.Error("Update listing service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Listing updated", updated)
}

// Search implements ListingHandler. Filters come from query parameters;
// inactive listings are excluded unless active=false is passed explicitly.
func (h *ListingHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filters := listing.SearchFilters{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
		Query:    r.URL.Query().Get("q"),
	}
	if filters.Category != "" && !listing.ValidCategory(filters.Category) {
		response.HandleError(w, listing.ErrInvalidCategory)
		return
	}

	active := true
	if raw := r.URL.Query().Get("active"); raw != "" {
		if parsed, ok := validator.ParseBool(raw); ok {
			active = parsed
		}
	}
	filters.Active = &active

	results, err := h.listingService.Search(r.Context(), optionalPrincipal(r), filters)
	if err != nil {
		slog.Error("Search listings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Apply implements ListingHandler.
func (h *ListingHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req listing.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	listingID := chi.URLParam(r, "listingID")

	application, err := h.listingService.Apply(r.Context(), principal, listingID, req)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted", application)
}

// ListApplications implements ListingHandler.
func (h *ListingHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	listingID := chi.URLParam(r, "listingID")

	applications, err := h.listingService.ListApplications(r.Context(), principal, listingID)
	if err != nil {
		slog.Error("ListApplications service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, applications)
}
