package verification

import (
	"context"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
)

// Service handles the verification workflow business logic
type Service interface {
	// Submit stores the uploaded file and creates a pending document.
	// The owner's verification status moves to pending.
	Submit(ctx context.Context, principal auth.Principal, upload Upload) (DocumentResponse, error)

	// Resolve records an admin decision on a document and propagates it to
	// the owner's verification status. Re-resolving an already resolved
	// document overwrites the previous decision.
	Resolve(ctx context.Context, principal auth.Principal, documentID string, decision string, note *string) (ResolveResponse, error)

	// Status returns the caller's verification status and latest document
	Status(ctx context.Context, principal auth.Principal) (StatusResponse, error)

	// ListDocuments returns the caller's own submission history, newest first
	ListDocuments(ctx context.Context, principal auth.Principal) ([]DocumentResponse, error)

	// GetDocument returns a single document with a time-limited download
	// URL. Owners read their own documents; admins read any.
	GetDocument(ctx context.Context, principal auth.Principal, documentID string) (DocumentDetail, error)

	// OpenDocument streams the stored file for the same audience
	OpenDocument(ctx context.Context, principal auth.Principal, documentID string) (DocumentFile, error)

	// ListPending returns the admin review queue, oldest submission first
	ListPending(ctx context.Context, principal auth.Principal) ([]DocumentResponse, error)
}
