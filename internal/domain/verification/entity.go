package verification

import "time"

// DocumentStatus tracks the review state of a single uploaded document
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusApproved DocumentStatus = "approved"
	StatusRejected DocumentStatus = "rejected"
)

// Decision is the subset of statuses a reviewer may assign
type Decision = DocumentStatus

// Document is one uploaded identity document. Documents are append-only:
// a resubmission creates a new row, and the newest row by CreatedAt is the
// one that drives the owner's verification status.
type Document struct {
	ID                 string
	UserID             string
	FileName           string
	FilePath           string
	FileType           string
	Status             DocumentStatus
	ReviewerID         *string
	ReviewNote         *string
	WaiverAcknowledged bool
	CreatedAt          time.Time
}

func ValidDecision(s string) bool {
	switch DocumentStatus(s) {
	case StatusApproved, StatusRejected:
		return true
	}
	return false
}
