package verification

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/email"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/storage"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
)

var testVerificationDB *database.DB

func verificationTestInit(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	if testVerificationDB == nil {
		var err error
		testVerificationDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}
	return testVerificationDB
}

func truncateVerificationTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	for _, table := range []string{"verification_documents", "users"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createVerificationTestUser(t *testing.T, ctx context.Context, db *database.DB, role user.Role) string {
	t.Helper()
	var userID string
	emailAddr := fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano())
	err := db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, 'not-a-real-hash', $2)
		RETURNING id
	`, emailAddr, role).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func newVerificationTestService(t *testing.T, db *database.DB) verification.Service {
	t.Helper()
	fileStorage, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	emailService, err := email.NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	return NewVerificationService(
		db,
		postgresql.NewVerificationRepository(db),
		postgresql.NewUserRepository(db),
		fileStorage,
		emailService,
		config.UploadConfig{
			MaxSizeBytes: 1 << 20,
			AllowedTypes: []string{"application/pdf", "image/jpeg", "image/png"},
		},
	)
}

func pdfUpload(content string) verification.Upload {
	return verification.Upload{
		File:               strings.NewReader(content),
		FileName:           "visa.pdf",
		FileType:           "application/pdf",
		Size:               int64(len(content)),
		WaiverAcknowledged: true,
	}
}

func userVerificationStatus(t *testing.T, ctx context.Context, db *database.DB, userID string) string {
	t.Helper()
	var status string
	require.NoError(t, db.QueryRow(ctx, `SELECT verification_status FROM users WHERE id = $1`, userID).Scan(&status))
	return status
}

func TestSubmit_CreatesPendingDocument(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	principal := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	doc, err := svc.Submit(ctx, principal, pdfUpload("%PDF-1.4 fake document"))
	require.NoError(t, err)

	assert.Equal(t, workerID, doc.UserID)
	assert.Equal(t, string(verification.StatusPending), doc.Status)
	assert.True(t, doc.WaiverAcknowledged)
	assert.Equal(t, "pending", userVerificationStatus(t, ctx, db, workerID))
}

func TestSubmit_RequiresWaiver(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	principal := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	upload := pdfUpload("doc")
	upload.WaiverAcknowledged = false

	_, err := svc.Submit(ctx, principal, upload)
	assert.ErrorIs(t, err, verification.ErrWaiverNotAcknowledged)
	assert.Equal(t, "unverified", userVerificationStatus(t, ctx, db, workerID))
}

func TestSubmit_RejectsUnsupportedType(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	principal := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	upload := pdfUpload("MZ fake executable")
	upload.FileName = "visa.exe"
	upload.FileType = "application/x-msdownload"

	_, err := svc.Submit(ctx, principal, upload)
	assert.ErrorIs(t, err, verification.ErrUnsupportedFileType)
}

func TestSubmit_RejectsOversizedFile(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	principal := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	upload := pdfUpload("small body")
	upload.Size = 2 << 20

	_, err := svc.Submit(ctx, principal, upload)
	assert.ErrorIs(t, err, verification.ErrFileTooLarge)
}

func TestResolve_ApproveUpdatesOwnerStatus(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	adminID := createVerificationTestUser(t, ctx, db, user.RoleAdmin)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	admin := auth.Principal{UserID: adminID, Role: user.RoleAdmin}

	svc := newVerificationTestService(t, db)

	doc, err := svc.Submit(ctx, worker, pdfUpload("doc"))
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, admin, doc.ID, "approved", nil)
	require.NoError(t, err)

	assert.Equal(t, string(verification.StatusApproved), resolved.Status)
	assert.Equal(t, "approved", resolved.VerificationStatus)
	require.NotNil(t, resolved.ReviewerID)
	assert.Equal(t, adminID, *resolved.ReviewerID)
	assert.Equal(t, "approved", userVerificationStatus(t, ctx, db, workerID))
}

func TestResolve_RejectRecordsNote(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	adminID := createVerificationTestUser(t, ctx, db, user.RoleAdmin)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	admin := auth.Principal{UserID: adminID, Role: user.RoleAdmin}

	svc := newVerificationTestService(t, db)

	doc, err := svc.Submit(ctx, worker, pdfUpload("doc"))
	require.NoError(t, err)

	note := "Document is illegible"
	resolved, err := svc.Resolve(ctx, admin, doc.ID, "rejected", &note)
	require.NoError(t, err)

	assert.Equal(t, string(verification.StatusRejected), resolved.Status)
	require.NotNil(t, resolved.ReviewNote)
	assert.Equal(t, note, *resolved.ReviewNote)
	assert.Equal(t, "rejected", userVerificationStatus(t, ctx, db, workerID))
}

func TestResolve_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	doc, err := svc.Submit(ctx, worker, pdfUpload("doc"))
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, worker, doc.ID, "approved", nil)
	assert.ErrorIs(t, err, user.ErrAdminRequired)
}

func TestResolve_InvalidDecision(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	adminID := createVerificationTestUser(t, ctx, db, user.RoleAdmin)
	admin := auth.Principal{UserID: adminID, Role: user.RoleAdmin}

	svc := newVerificationTestService(t, db)

	_, err := svc.Resolve(ctx, admin, "00000000-0000-0000-0000-000000000000", "maybe", nil)
	assert.ErrorIs(t, err, verification.ErrInvalidDecision)
}

func TestListPending_OldestFirst(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	firstWorker := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	secondWorker := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	adminID := createVerificationTestUser(t, ctx, db, user.RoleAdmin)
	admin := auth.Principal{UserID: adminID, Role: user.RoleAdmin}

	svc := newVerificationTestService(t, db)

	first, err := svc.Submit(ctx, auth.Principal{UserID: firstWorker, Role: user.RoleWorker}, pdfUpload("first"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, auth.Principal{UserID: secondWorker, Role: user.RoleWorker}, pdfUpload("second"))
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)

	// Resolved documents leave the queue
	_, err = svc.Resolve(ctx, admin, first.ID, "approved", nil)
	require.NoError(t, err)

	pending, err = svc.ListPending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestStatus_ReflectsLatestDocument(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	status, err := svc.Status(ctx, worker)
	require.NoError(t, err)
	assert.Equal(t, "unverified", status.VerificationStatus)
	assert.Nil(t, status.LatestDocument)

	doc, err := svc.Submit(ctx, worker, pdfUpload("doc"))
	require.NoError(t, err)

	status, err = svc.Status(ctx, worker)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.VerificationStatus)
	require.NotNil(t, status.LatestDocument)
	assert.Equal(t, doc.ID, status.LatestDocument.ID)
}

func TestListDocuments_OwnHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	otherID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	other := auth.Principal{UserID: otherID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	first, err := svc.Submit(ctx, worker, pdfUpload("first"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, worker, pdfUpload("second"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, other, pdfUpload("someone else"))
	require.NoError(t, err)

	docs, err := svc.ListDocuments(ctx, worker)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.ID, docs[0].ID)
	assert.Equal(t, first.ID, docs[1].ID)
}

func TestGetDocument_OwnerAndAdminOnly(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	otherID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	adminID := createVerificationTestUser(t, ctx, db, user.RoleAdmin)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	created, err := svc.Submit(ctx, worker, pdfUpload("mine"))
	require.NoError(t, err)

	detail, err := svc.GetDocument(ctx, worker, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.NotEmpty(t, detail.DownloadURL)

	_, err = svc.GetDocument(ctx, auth.Principal{UserID: adminID, Role: user.RoleAdmin}, created.ID)
	assert.NoError(t, err)

	// Someone else's document reads as not-found
	_, err = svc.GetDocument(ctx, auth.Principal{UserID: otherID, Role: user.RoleWorker}, created.ID)
	assert.ErrorIs(t, err, verification.ErrDocumentNotFound)
}

func TestOpenDocument_StreamsStoredBytes(t *testing.T) {
	ctx := context.Background()
	db := verificationTestInit(t)
	truncateVerificationTables(t, ctx, db)

	workerID := createVerificationTestUser(t, ctx, db, user.RoleWorker)
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}

	svc := newVerificationTestService(t, db)

	created, err := svc.Submit(ctx, worker, pdfUpload("%PDF-1.4 streamed body"))
	require.NoError(t, err)

	file, err := svc.OpenDocument(ctx, worker, created.ID)
	require.NoError(t, err)
	defer file.Content.Close()

	body, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 streamed body", string(body))
	assert.Equal(t, "application/pdf", file.FileType)
	assert.Equal(t, "visa.pdf", file.FileName)
}
