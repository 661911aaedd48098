package verification

import (
	"io"
	"time"
)

// Upload carries a document submission into the service. Size is the
// declared content length; the service enforces the configured ceiling
// before reading the stream.
type Upload struct {
	File               io.Reader
	FileName           string
	FileType           string
	Size               int64
	WaiverAcknowledged bool
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	FileName           string  `json:"filename"`
	FileType           string  `json:"file_type"`
	Status             string  `json:"status"`
	ReviewerID         *string `json:"reviewer_id,omitempty"`
	ReviewNote         *string `json:"review_note,omitempty"`
	WaiverAcknowledged bool    `json:"waiver_acknowledged"`
	CreatedAt          string  `json:"created_at"`
}

// DocumentDetail extends a document with a time-limited download URL
type DocumentDetail struct {
	DocumentResponse
	DownloadURL string `json:"download_url"`
}

// DocumentFile is an open stream over the stored document bytes. The
// caller owns Content and must close it.
type DocumentFile struct {
	Content  io.ReadCloser
	FileName string
	FileType string
}

// StatusResponse is the caller's own verification state
type StatusResponse struct {
	VerificationStatus string            `json:"verification_status"`
	LatestDocument     *DocumentResponse `json:"latest_document"`
}

// ResolveResponse pairs the resolved document with the owner's new status
type ResolveResponse struct {
	DocumentResponse
	VerificationStatus string `json:"verification_status"`
}

func ToDocumentResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:                 d.ID,
		UserID:             d.UserID,
		FileName:           d.FileName,
		FileType:           d.FileType,
		Status:             string(d.Status),
		ReviewerID:         d.ReviewerID,
		ReviewNote:         d.ReviewNote,
		WaiverAcknowledged: d.WaiverAcknowledged,
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
	}
}
