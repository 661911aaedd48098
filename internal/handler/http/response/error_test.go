package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/billing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"admin required", user.ErrAdminRequired, http.StatusForbidden},
		{"document not found", verification.ErrDocumentNotFound, http.StatusNotFound},
		{"storage unavailable", verification.ErrStorageUnavailable, http.StatusBadGateway},
		{"listing not accepting", listing.ErrListingNotAccepting, http.StatusBadRequest},
		{"already applied", listing.ErrAlreadyApplied, http.StatusConflict},
		{"payment required", billing.ErrPaymentRequired, http.StatusPaymentRequired},
		{"invalid signature", billing.ErrInvalidSignature, http.StatusBadRequest},
		{"provider not configured", billing.ErrProviderNotConfigured, http.StatusBadGateway},
		{"provider unavailable", billing.ErrProviderUnavailable, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
