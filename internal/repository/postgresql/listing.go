package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
)

type listingRepositoryImpl struct {
	db *database.DB
}

func NewListingRepository(db *database.DB) listing.Repository {
	return &listingRepositoryImpl{db: db}
}

const listingColumns = `id, owner_id, category, title, description, company_name, contact_method, contact_value,
		   city, pay_rate, currency, shift, is_public, is_active, expires_at, created_at`

func scanListing(row pgx.Row) (listing.Listing, error) {
	var l listing.Listing
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Category,
		&l.Title,
		&l.Description,
		&l.CompanyName,
		&l.ContactMethod,
		&l.ContactValue,
		&l.City,
		&l.PayRate,
		&l.Currency,
		&l.Shift,
		&l.IsPublic,
		&l.IsActive,
		&l.ExpiresAt,
		&l.CreatedAt,
	)
	if err != nil {
		return listing.Listing{}, err
	}
	return l, nil
}

// GetByID implements listing.Repository.
func (r *listingRepositoryImpl) GetByID(ctx context.Context, id string) (listing.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`

	return scanListing(r.db.Pool.QueryRow(ctx, query, id))
}

// Create implements listing.Repository.
func (r *listingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, l listing.Listing) (listing.Listing, error) {
	query := `
		INSERT INTO listings (
			owner_id, category, title, description, company_name, contact_method, contact_value,
			city, pay_rate, currency, shift, is_public, is_active, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + listingColumns + `
	`

	return scanListing(tx.QueryRow(ctx, query,
		l.OwnerID,
		l.Category,
		l.Title,
		l.Description,
		l.CompanyName,
		l.ContactMethod,
		l.ContactValue,
		l.City,
		l.PayRate,
		l.Currency,
		l.Shift,
		l.IsPublic,
		l.IsActive,
		l.ExpiresAt,
	))
}

// Update implements listing.Repository.
func (r *listingRepositoryImpl) Update(ctx context.Context, l listing.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, company_name = $3, contact_method = $4, contact_value = $5,
			city = $6, pay_rate = $7, currency = $8, shift = $9, is_public = $10, is_active = $11,
			expires_at = $12
		WHERE id = $13
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		l.Title,
		l.Description,
		l.CompanyName,
		l.ContactMethod,
		l.ContactValue,
		l.City,
		l.PayRate,
		l.Currency,
		l.Shift,
		l.IsPublic,
		l.IsActive,
		l.ExpiresAt,
		l.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Search implements listing.Repository.
func (r *listingRepositoryImpl) Search(ctx context.Context, filters listing.SearchFilters) ([]listing.Listing, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(condition string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filters.Category != "" {
		addCondition("category = $%d", filters.Category)
	}
	if filters.City != "" {
		addCondition("city ILIKE $%d", filters.City)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		args = append(args, pattern)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filters.Active != nil {
		// Active means the flag is set and the listing has not expired.
		if *filters.Active {
			conditions = append(conditions, "is_active = TRUE AND (expires_at IS NULL OR expires_at >= NOW())")
		} else {
			conditions = append(conditions, "(is_active = FALSE OR expires_at < NOW())")
		}
	}

	query := `
		SELECT ` + listingColumns + `
		FROM listings
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) listing.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

// Create implements listing.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, a listing.Application) (listing.Application, error) {
	query := `
		INSERT INTO applications (user_id, listing_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, listing_id, message, created_at
	`

	var created listing.Application
	err := r.db.Pool.QueryRow(ctx, query, a.UserID, a.ListingID, a.Message).Scan(
		&created.ID,
		&created.UserID,
		&created.ListingID,
		&created.Message,
		&created.CreatedAt,
	)
	if err != nil {
		return listing.Application{}, err
	}
	return created, nil
}

// Exists implements listing.ApplicationRepository.
func (r *applicationRepositoryImpl) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND listing_id = $2)`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, userID, listingID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListByListingID implements listing.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByListingID(ctx context.Context, listingID string) ([]listing.Application, error) {
	query := `
		SELECT id, user_id, listing_id, message, created_at
		FROM applications
		WHERE listing_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []listing.Application
	for rows.Next() {
		var a listing.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.ListingID, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}
