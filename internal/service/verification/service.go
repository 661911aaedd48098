package verification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/email"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/storage"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
)

// downloadURLTTL bounds how long a generated document URL stays valid
const downloadURLTTL = 15 * time.Minute

type VerificationServiceImpl struct {
	db           *database.DB
	documentRepo verification.Repository
	userRepo     user.Repository
	fileStorage  storage.FileStorage
	emailService email.EmailService
	uploadCfg    config.UploadConfig
}

func NewVerificationService(
	db *database.DB,
	documentRepo verification.Repository,
	userRepo user.Repository,
	fileStorage storage.FileStorage,
	emailService email.EmailService,
	uploadCfg config.UploadConfig,
) verification.Service {
	return &VerificationServiceImpl{
		db:           db,
		documentRepo: documentRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		emailService: emailService,
		uploadCfg:    uploadCfg,
	}
}

// Submit implements verification.Service.
func (s *VerificationServiceImpl) Submit(ctx context.Context, principal auth.Principal, upload verification.Upload) (verification.DocumentResponse, error) {
	if !upload.WaiverAcknowledged {
		return verification.DocumentResponse{}, verification.ErrWaiverNotAcknowledged
	}
	if upload.File == nil || upload.FileName == "" {
		return verification.DocumentResponse{}, verification.ErrFileRequired
	}
	if !s.allowedType(upload.FileType) {
		return verification.DocumentResponse{}, verification.ErrUnsupportedFileType
	}
	if upload.Size > s.uploadCfg.MaxSizeBytes {
		return verification.DocumentResponse{}, verification.ErrFileTooLarge
	}

	// The file goes to storage first; the pending row is only written once
	// the bytes are durable. A failed insert cleans the orphan up.
	path := fmt.Sprintf("verification/%s/%s%s", principal.UserID, uuid.NewString(), filepath.Ext(upload.FileName))
	reader := io.LimitReader(upload.File, s.uploadCfg.MaxSizeBytes)

	storedPath, err := s.fileStorage.Upload(ctx, reader, path, upload.FileType)
	if err != nil {
		return verification.DocumentResponse{}, verification.ErrStorageUnavailable
	}

	var created verification.Document
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		created, err = s.documentRepo.Create(ctx, tx, verification.Document{
			UserID:             principal.UserID,
			FileName:           upload.FileName,
			FilePath:           storedPath,
			FileType:           upload.FileType,
			Status:             verification.StatusPending,
			WaiverAcknowledged: upload.WaiverAcknowledged,
		})
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		return s.userRepo.UpdateVerificationStatus(ctx, tx, principal.UserID, user.StatusPending)
	})
	if err != nil {
		if delErr := s.fileStorage.Delete(ctx, storedPath); delErr != nil {
			slog.Error("Failed to clean up stored document after insert failure", "path", storedPath, "error", delErr)
		}
		return verification.DocumentResponse{}, err
	}

	return verification.ToDocumentResponse(created), nil
}

// Resolve implements verification.Service.
func (s *VerificationServiceImpl) Resolve(ctx context.Context, principal auth.Principal, documentID string, decision string, note *string) (verification.ResolveResponse, error) {
	if !principal.IsAdmin() {
		return verification.ResolveResponse{}, user.ErrAdminRequired
	}
	if !verification.ValidDecision(decision) {
		return verification.ResolveResponse{}, verification.ErrInvalidDecision
	}

	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.ResolveResponse{}, verification.ErrDocumentNotFound
		}
		return verification.ResolveResponse{}, fmt.Errorf("failed to get document: %w", err)
	}

	newStatus := user.StatusApproved
	if verification.Decision(decision) == verification.StatusRejected {
		newStatus = user.StatusRejected
	}

	var resolved verification.Document
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		resolved, err = s.documentRepo.Resolve(ctx, tx, documentID, verification.Decision(decision), principal.UserID, note)
		if err != nil {
			return fmt.Errorf("failed to resolve document: %w", err)
		}

		return s.userRepo.UpdateVerificationStatus(ctx, tx, doc.UserID, newStatus)
	})
	if err != nil {
		return verification.ResolveResponse{}, err
	}

	s.notifyOwner(ctx, doc.UserID, newStatus, note)

	return verification.ResolveResponse{
		DocumentResponse:   verification.ToDocumentResponse(resolved),
		VerificationStatus: string(newStatus),
	}, nil
}

// Status implements verification.Service.
func (s *VerificationServiceImpl) Status(ctx context.Context, principal auth.Principal) (verification.StatusResponse, error) {
	userData, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.StatusResponse{}, user.ErrUserNotFound
		}
		return verification.StatusResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	resp := verification.StatusResponse{
		VerificationStatus: string(userData.VerificationStatus),
	}

	latest, err := s.documentRepo.GetLatestByUserID(ctx, principal.UserID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return verification.StatusResponse{}, fmt.Errorf("failed to get latest document: %w", err)
		}
		return resp, nil
	}

	docResp := verification.ToDocumentResponse(latest)
	resp.LatestDocument = &docResp
	return resp, nil
}

// ListDocuments implements verification.Service.
func (s *VerificationServiceImpl) ListDocuments(ctx context.Context, principal auth.Principal) ([]verification.DocumentResponse, error) {
	docs, err := s.documentRepo.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	responses := make([]verification.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, verification.ToDocumentResponse(doc))
	}
	return responses, nil
}

// GetDocument implements verification.Service.
func (s *VerificationServiceImpl) GetDocument(ctx context.Context, principal auth.Principal, documentID string) (verification.DocumentDetail, error) {
	doc, err := s.visibleDocument(ctx, principal, documentID)
	if err != nil {
		return verification.DocumentDetail{}, err
	}

	url, err := s.fileStorage.GetURL(ctx, doc.FilePath, downloadURLTTL)
	if err != nil {
		return verification.DocumentDetail{}, verification.ErrStorageUnavailable
	}

	return verification.DocumentDetail{
		DocumentResponse: verification.ToDocumentResponse(doc),
		DownloadURL:      url,
	}, nil
}

// OpenDocument implements verification.Service.
func (s *VerificationServiceImpl) OpenDocument(ctx context.Context, principal auth.Principal, documentID string) (verification.DocumentFile, error) {
	doc, err := s.visibleDocument(ctx, principal, documentID)
	if err != nil {
		return verification.DocumentFile{}, err
	}

	exists, err := s.fileStorage.Exists(ctx, doc.FilePath)
	if err != nil {
		return verification.DocumentFile{}, verification.ErrStorageUnavailable
	}
	if !exists {
		return verification.DocumentFile{}, verification.ErrDocumentNotFound
	}

	content, err := s.fileStorage.Download(ctx, doc.FilePath)
	if err != nil {
		return verification.DocumentFile{}, verification.ErrStorageUnavailable
	}

	return verification.DocumentFile{
		Content:  content,
		FileName: doc.FileName,
		FileType: doc.FileType,
	}, nil
}

// visibleDocument loads a document the principal may read. Documents
// belonging to other users come back not-found, never forbidden.
func (s *VerificationServiceImpl) visibleDocument(ctx context.Context, principal auth.Principal, documentID string) (verification.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.Document{}, verification.ErrDocumentNotFound
		}
		return verification.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	if doc.UserID != principal.UserID && !principal.IsAdmin() {
		return verification.Document{}, verification.ErrDocumentNotFound
	}
	return doc, nil
}

// ListPending implements verification.Service.
func (s *VerificationServiceImpl) ListPending(ctx context.Context, principal auth.Principal) ([]verification.DocumentResponse, error) {
	if !principal.IsAdmin() {
		return nil, user.ErrAdminRequired
	}

	docs, err := s.documentRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending documents: %w", err)
	}

	responses := make([]verification.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, verification.ToDocumentResponse(doc))
	}
	return responses, nil
}

func (s *VerificationServiceImpl) allowedType(fileType string) bool {
	fileType = strings.ToLower(strings.TrimSpace(fileType))
	for _, allowed := range s.uploadCfg.AllowedTypes {
		if fileType == allowed {
			return true
		}
	}
	return false
}

// notifyOwner emails the document owner about the decision. Delivery
// failures are logged, not surfaced; the decision already committed.
func (s *VerificationServiceImpl) notifyOwner(ctx context.Context, userID string, status user.VerificationStatus, note *string) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to load document owner for notification", "user_id", userID, "error", err)
		return
	}

	if status == user.StatusApproved {
		err = s.emailService.SendVerificationApproved(owner.Email, owner.Email)
	} else {
		reviewNote := ""
		if note != nil {
			reviewNote = *note
		}
		err = s.emailService.SendVerificationRejected(owner.Email, owner.Email, reviewNote)
	}
	if err != nil {
		slog.Error("Failed to send verification decision email", "user_id", userID, "error", err)
	}
}
