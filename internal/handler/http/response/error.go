package response

import (
	"errors"
	"net/http"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrNotAuthenticated):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrEmployerRequired):
		Forbidden(w, "Employer access required")
	case errors.Is(err, user.ErrWorkerRequired):
		Forbidden(w, "Worker access required")

	// Verification domain errors
	case errors.Is(err, verification.ErrDocumentNotFound):
		NotFound(w, "Verification document not found")
	case errors.Is(err, verification.ErrWaiverNotAcknowledged):
		BadRequest(w, "Waiver must be acknowledged", nil)
	case errors.Is(err, verification.ErrFileRequired):
		BadRequest(w, "A document file is required", nil)
	case errors.Is(err, verification.ErrUnsupportedFileType):
		BadRequest(w, "Unsupported document file type", nil)
	case errors.Is(err, verification.ErrFileTooLarge):
		ContentTooLarge(w, "Document file exceeds the size limit")
	case errors.Is(err, verification.ErrInvalidDecision):
		BadRequest(w, "Decision must be approved or rejected", nil)
	case errors.Is(err, verification.ErrStorageUnavailable):
		BadGateway(w, "Document storage is unavailable")

	// Listing domain errors
	case errors.Is(err, listing.ErrListingNotFound):
		NotFound(w, "Listing not found")
	case errors.Is(err, listing.ErrListingNotVisible):
		NotFound(w, "Listing not found")
	case errors.Is(err, listing.ErrInvalidCategory):
		BadRequest(w, "Invalid listing category", nil)
	case errors.Is(err, listing.ErrListingNotAccepting):
		BadRequest(w, "Listing is not accepting applications", nil)
	case errors.Is(err, listing.ErrAlreadyApplied):
		Conflict(w, "Already applied to this listing")
	case errors.Is(err, listing.ErrNotListingOwner):
		Forbidden(w, "Only the owner or an admin can modify this listing")

	// Billing domain errors
	case errors.Is(err, billing.ErrPaymentRequired):
		PaymentRequired(w, "Listing credits or an active subscription are required")
	case errors.Is(err, billing.ErrAccountNotFound):
		NotFound(w, "Billing account not found")
	case errors.Is(err, billing.ErrInvalidSignature):
		BadRequest(w, "Invalid webhook signature", nil)
	case errors.Is(err, billing.ErrProviderNotConfigured):
		BadGateway(w, "Payment provider is not configured")
	case errors.Is(err, billing.ErrProviderUnavailable):
		BadGateway(w, "Payment provider request failed")
	case errors.Is(err, billing.ErrInvalidQuantity):
		BadRequest(w, "Quantity must be a positive integer", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
