package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
)

type verificationRepositoryImpl struct {
	db *database.DB
}

func NewVerificationRepository(db *database.DB) verification.Repository {
	return &verificationRepositoryImpl{db: db}
}

const documentColumns = `id, user_id, file_name, file_path, file_type, status, reviewer_id, review_note, waiver_acknowledged, created_at`

func scanDocument(row pgx.Row) (verification.Document, error) {
	var doc verification.Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.FilePath,
		&doc.FileType,
		&doc.Status,
		&doc.ReviewerID,
		&doc.ReviewNote,
		&doc.WaiverAcknowledged,
		&doc.CreatedAt,
	)
	if err != nil {
		return verification.Document{}, err
	}
	return doc, nil
}

// GetByID implements verification.Repository.
func (r *verificationRepositoryImpl) GetByID(ctx context.Context, id string) (verification.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE id = $1
	`

	return scanDocument(r.db.Pool.QueryRow(ctx, query, id))
}

// GetLatestByUserID implements verification.Repository.
func (r *verificationRepositoryImpl) GetLatestByUserID(ctx context.Context, userID string) (verification.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	return scanDocument(r.db.Pool.QueryRow(ctx, query, userID))
}

// ListByUserID implements verification.Repository.
func (r *verificationRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]verification.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []verification.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Create implements verification.Repository.
func (r *verificationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, doc verification.Document) (verification.Document, error) {
	query := `
		INSERT INTO verification_documents (user_id, file_name, file_path, file_type, status, waiver_acknowledged)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + documentColumns + `
	`

	return scanDocument(tx.QueryRow(ctx, query,
		doc.UserID,
		doc.FileName,
		doc.FilePath,
		doc.FileType,
		doc.Status,
		doc.WaiverAcknowledged,
	))
}

// Resolve implements verification.Repository.
func (r *verificationRepositoryImpl) Resolve(ctx context.Context, tx pgx.Tx, id string, decision verification.Decision, reviewerID string, note *string) (verification.Document, error) {
	query := `
		UPDATE verification_documents
		SET status = $1, reviewer_id = $2, review_note = $3
		WHERE id = $4
		RETURNING ` + documentColumns + `
	`

	return scanDocument(tx.QueryRow(ctx, query, decision, reviewerID, note, id))
}

// ListPending implements verification.Repository.
func (r *verificationRepositoryImpl) ListPending(ctx context.Context) ([]verification.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE status = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, verification.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []verification.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
