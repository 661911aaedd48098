package verification

import "errors"

var (
	ErrDocumentNotFound      = errors.New("verification document not found")
	ErrWaiverNotAcknowledged = errors.New("waiver must be acknowledged")
	ErrFileRequired          = errors.New("a document file is required")
	ErrUnsupportedFileType   = errors.New("unsupported document file type")
	ErrFileTooLarge          = errors.New("document file exceeds the size limit")
	ErrInvalidDecision       = errors.New("decision must be approved or rejected")
	ErrStorageUnavailable    = errors.New("document storage is unavailable")
)
