package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, role, verification_status, is_active, created_at`

func scanUser(row pgx.Row) (user.User, error) {
	var found user.User
	err := row.Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.VerificationStatus,
		&found.IsActive,
		&found.CreatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return found, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	return scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	query := `
		INSERT INTO users (email, password_hash, role, verification_status, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	`

	return scanUser(r.db.Pool.QueryRow(ctx, query,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.VerificationStatus,
		newUser.IsActive,
	))
}

// UpdateVerificationStatus implements user.Repository.
func (r *userRepositoryImpl) UpdateVerificationStatus(ctx context.Context, tx pgx.Tx, id string, status user.VerificationStatus) error {
	query := `
		UPDATE users
		SET verification_status = $1
		WHERE id = $2
	`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
