package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/presyo/backend/internal/model"
)

// ErrAdminNotFound is returned when an admin user does not exist.
var ErrAdminNotFound = errors.New("admin user not found")

// AdminRepository defines the interface for admin user data access
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	Create(ctx context.Context, admin *model.AdminUser) error
}

type adminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetByEmail returns an admin user by email
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.GetContext(ctx, &admin, `
		SELECT id, email, password_hash, created_at FROM admin_users WHERE email = $1
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}

// Create inserts a new admin user
func (r *adminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, admin.ID, admin.Email, admin.PasswordHash).Scan(&admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
