package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
)

type ListingServiceImpl struct {
	db              *database.DB
	listingRepo     listing.Repository
	applicationRepo listing.ApplicationRepository
	billingRepo     billing.Repository
	userRepo        user.Repository
}

func NewListingService(
	db *database.DB,
	listingRepo listing.Repository,
	applicationRepo listing.ApplicationRepository,
	billingRepo billing.Repository,
	userRepo user.Repository,
) listing.Service {
	return &ListingServiceImpl{
		db:              db,
		listingRepo:     listingRepo,
		applicationRepo: applicationRepo,
		billingRepo:     billingRepo,
		userRepo:        userRepo,
	}
}

// Create implements listing.Service. The billing check, the credit
// decrement and the listing insert commit in one transaction, with the
// account row locked for its duration. Two concurrent creations on a
// one-credit account serialize on that lock: the second re-reads zero
// credits and is denied.
func (s *ListingServiceImpl) Create(ctx context.Context, principal auth.Principal, req listing.CreateRequest) (listing.Response, error) {
	if err := req.Validate(); err != nil {
		return listing.Response{}, err
	}
	if principal.Role != user.RoleEmployer && principal.Role != user.RoleAdmin {
		return listing.Response{}, user.ErrEmployerRequired
	}

	newListing := listing.Listing{
		OwnerID:       principal.UserID,
		Category:      listing.Category(req.Category),
		Title:         req.Title,
		Description:   req.Description,
		CompanyName:   req.CompanyName,
		ContactMethod: req.ContactMethod,
		ContactValue:  req.ContactValue,
		City:          req.City,
		PayRate:       req.PayRate,
		Currency:      req.Currency,
		Shift:         req.Shift,
		IsPublic:      true,
		IsActive:      true,
		ExpiresAt:     req.ExpiresAtTime(),
	}
	if req.IsPublic != nil {
		newListing.IsPublic = *req.IsPublic
	}
	if req.IsActive != nil {
		newListing.IsActive = *req.IsActive
	}

	var created listing.Listing
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		decision := billing.Decision{Allowed: true}
		if principal.Role != user.RoleAdmin {
			account, err := s.billingRepo.GetForUpdate(ctx, tx, principal.UserID)
			if err != nil {
				return fmt.Errorf("failed to lock billing account: %w", err)
			}
			decision = billing.AuthorizeListingCreation(account, principal.Role, time.Now())
		}

		if !decision.Allowed {
			return billing.ErrPaymentRequired
		}
		if decision.ConsumesCredit {
			if err := s.billingRepo.ConsumeCredit(ctx, tx, principal.UserID); err != nil {
				return err
			}
		}

		var err error
		created, err = s.listingRepo.Create(ctx, tx, newListing)
		if err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return listing.Response{}, err
	}

	return listing.ToResponse(created, true), nil
}

// Get implements listing.Service.
func (s *ListingServiceImpl) Get(ctx context.Context, principal *auth.Principal, id string) (listing.Response, error) {
	found, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listing.Response{}, listing.ErrListingNotFound
		}
		return listing.Response{}, fmt.Errorf("failed to get listing: %w", err)
	}

	viewer, err := s.resolveViewer(ctx, principal)
	if err != nil {
		return listing.Response{}, err
	}

	// Hidden rows answer not-found, not forbidden, so their existence
	// cannot be probed.
	if !listing.CanView(found, viewer) {
		return listing.Response{}, listing.ErrListingNotFound
	}

	return listing.ToResponse(found, listing.CanViewContact(found, viewer)), nil
}

// Update implements listing.Service.
func (s *ListingServiceImpl) Update(ctx context.Context, principal auth.Principal, id string, req listing.UpdateRequest) (listing.Response, error) {
	if err := req.Validate(); err != nil {
		return listing.Response{}, err
	}

	found, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listing.Response{}, listing.ErrListingNotFound
		}
		return listing.Response{}, fmt.Errorf("failed to get listing: %w", err)
	}

	if found.OwnerID != principal.UserID && !principal.IsAdmin() {
		return listing.Response{}, listing.ErrNotListingOwner
	}

	applyUpdate(&found, req)

	if err := s.listingRepo.Update(ctx, found); err != nil {
		return listing.Response{}, fmt.Errorf("failed to update listing: %w", err)
	}

	return listing.ToResponse(found, true), nil
}

// Search implements listing.Service. Rows the caller may not view are
// dropped from the result set rather than erroring the whole request.
func (s *ListingServiceImpl) Search(ctx context.Context, principal *auth.Principal, filters listing.SearchFilters) ([]listing.Response, error) {
	viewer, err := s.resolveViewer(ctx, principal)
	if err != nil {
		return nil, err
	}

	rows, err := s.listingRepo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	responses := make([]listing.Response, 0, len(rows))
	for _, row := range rows {
		if !listing.CanView(row, viewer) {
			continue
		}
		responses = append(responses, listing.ToResponse(row, listing.CanViewContact(row, viewer)))
	}
	return responses, nil
}

// Apply implements listing.Service.
func (s *ListingServiceImpl) Apply(ctx context.Context, principal auth.Principal, listingID string, req listing.ApplyRequest) (listing.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return listing.ApplicationResponse{}, err
	}
	if principal.Role != user.RoleWorker {
		return listing.ApplicationResponse{}, user.ErrWorkerRequired
	}

	found, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listing.ApplicationResponse{}, listing.ErrListingNotFound
		}
		return listing.ApplicationResponse{}, fmt.Errorf("failed to get listing: %w", err)
	}

	viewer, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return listing.ApplicationResponse{}, fmt.Errorf("failed to get applicant: %w", err)
	}
	if !listing.CanView(found, &viewer) {
		return listing.ApplicationResponse{}, listing.ErrListingNotFound
	}
	if !listing.IsCurrentlyActive(found, time.Now()) {
		return listing.ApplicationResponse{}, listing.ErrListingNotAccepting
	}

	applied, err := s.applicationRepo.Exists(ctx, principal.UserID, listingID)
	if err != nil {
		return listing.ApplicationResponse{}, fmt.Errorf("failed to check existing application: %w", err)
	}
	if applied {
		return listing.ApplicationResponse{}, listing.ErrAlreadyApplied
	}

	created, err := s.applicationRepo.Create(ctx, listing.Application{
		UserID:    principal.UserID,
		ListingID: listingID,
		Message:   req.Message,
	})
	if err != nil {
		return listing.ApplicationResponse{}, fmt.Errorf("failed to create application: %w", err)
	}

	return listing.ToApplicationResponse(created), nil
}

// ListApplications implements listing.Service.
func (s *ListingServiceImpl) ListApplications(ctx context.Context, principal auth.Principal, listingID string) ([]listing.ApplicationResponse, error) {
	found, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, listing.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if found.OwnerID != principal.UserID && !principal.IsAdmin() {
		return nil, listing.ErrNotListingOwner
	}

	applications, err := s.applicationRepo.ListByListingID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]listing.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, listing.ToApplicationResponse(a))
	}
	return responses, nil
}

func (s *ListingServiceImpl) resolveViewer(ctx context.Context, principal *auth.Principal) (*user.User, error) {
	if principal == nil {
		return nil, nil
	}
	viewer, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}
	return &viewer, nil
}

func applyUpdate(l *listing.Listing, req listing.UpdateRequest) {
	if req.Category != nil {
		l.Category = listing.Category(*req.Category)
	}
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.CompanyName != nil {
		l.CompanyName = req.CompanyName
	}
	if req.ContactMethod != nil {
		l.ContactMethod = *req.ContactMethod
	}
	if req.ContactValue != nil {
		l.ContactValue = *req.ContactValue
	}
	if req.City != nil {
		l.City = req.City
	}
	if req.PayRate != nil {
		l.PayRate = req.PayRate
	}
	if req.Currency != nil {
		l.Currency = req.Currency
	}
	if req.Shift != nil {
		l.Shift = req.Shift
	}
	if req.IsPublic != nil {
		l.IsPublic = *req.IsPublic
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			l.ExpiresAt = nil
		} else if t, ok := validator.IsValidDateTime(*req.ExpiresAt); ok {
			l.ExpiresAt = &t
		}
	}
}
