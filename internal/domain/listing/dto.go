package listing

import (
	"time"

	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Category      string           `json:"category"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	CompanyName   *string          `json:"company_name"`
	ContactMethod string           `json:"contact_method"`
	ContactValue  string           `json:"contact_value"`
	City          *string          `json:"city"`
	PayRate       *decimal.Decimal `json:"pay_rate"`
	Currency      *string          `json:"currency"`
	Shift         *string          `json:"shift"`
	IsPublic      *bool            `json:"is_public"`
	IsActive      *bool            `json:"is_active"`
	ExpiresAt     *string          `json:"expires_at"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	required := map[string]string{
		"category":       r.Category,
		"title":          r.Title,
		"description":    r.Description,
		"contact_method": r.ContactMethod,
		"contact_value":  r.ContactValue,
	}
	for field, value := range required {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if !validator.IsEmpty(r.Category) && !ValidCategory(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of jobs, housing, rides, gigs",
		})
	}
	if len(r.Title) > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 200 characters",
		})
	}
	if r.ExpiresAt != nil && *r.ExpiresAt != "" {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an ISO 8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExpiresAtTime returns the parsed expiry, valid only after Validate.
func (r *CreateRequest) ExpiresAtTime() *time.Time {
	if r.ExpiresAt == nil || *r.ExpiresAt == "" {
		return nil
	}
	t, ok := validator.IsValidDateTime(*r.ExpiresAt)
	if !ok {
		return nil
	}
	return &t
}

// UpdateRequest carries a partial listing update; nil fields are untouched
type UpdateRequest struct {
	Category      *string          `json:"category"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	CompanyName   *string          `json:"company_name"`
	ContactMethod *string          `json:"contact_method"`
	ContactValue  *string          `json:"contact_value"`
	City          *string          `json:"city"`
	PayRate       *decimal.Decimal `json:"pay_rate"`
	Currency      *string          `json:"currency"`
	Shift         *string          `json:"shift"`
	IsPublic      *bool            `json:"is_public"`
	IsActive      *bool            `json:"is_active"`
	ExpiresAt     *string          `json:"expires_at"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != nil && !ValidCategory(*r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of jobs, housing, rides, gigs",
		})
	}
	if r.Title != nil && (validator.IsEmpty(*r.Title) || len(*r.Title) > 200) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must be 1-200 characters",
		})
	}
	if r.ExpiresAt != nil && *r.ExpiresAt != "" {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an ISO 8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApplyRequest struct {
	Message string `json:"message"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SearchFilters narrows the listing search. Active defaults to true when
// the query parameter is absent.
type SearchFilters struct {
	Category string
	City     string
	Query    string
	Active   *bool
}

type Response struct {
	ID            string           `json:"id"`
	OwnerID       string           `json:"owner_id"`
	Category      string           `json:"category"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	CompanyName   *string          `json:"company_name"`
	ContactMethod *string          `json:"contact_method"`
	ContactValue  *string          `json:"contact_value"`
	City          *string          `json:"city"`
	PayRate       *decimal.Decimal `json:"pay_rate"`
	Currency      *string          `json:"currency"`
	Shift         *string          `json:"shift"`
	IsPublic      bool             `json:"is_public"`
	IsActive      bool             `json:"is_active"`
	ExpiresAt     *string          `json:"expires_at"`
	CreatedAt     string           `json:"created_at"`
}

// ToResponse serializes a listing. Contact fields are dropped, not masked
// with placeholders, when the viewer fails the contact gate.
func ToResponse(l Listing, includeContact bool) Response {
	resp := Response{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Category:    string(l.Category),
		Title:       l.Title,
		Description: l.Description,
		CompanyName: l.CompanyName,
		City:        l.City,
		PayRate:     l.PayRate,
		Currency:    l.Currency,
		Shift:       l.Shift,
		IsPublic:    l.IsPublic,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if includeContact {
		resp.ContactMethod = &l.ContactMethod
		resp.ContactValue = &l.ContactValue
	}
	if l.ExpiresAt != nil {
		formatted := l.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &formatted
	}
	return resp
}

type ApplicationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ListingID string `json:"listing_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func ToApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		ListingID: a.ListingID,
		Message:   a.Message,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
