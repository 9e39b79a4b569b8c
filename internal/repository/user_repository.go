package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dfquintero/autoferia/internal/model"
	"github.com/dfquintero/autoferia/internal/utils"
)

// UserStore is the contract handlers depend on for account and profile
// persistence. UserRepo is the MySQL implementation.
type UserStore interface {
	Create(ctx context.Context, email, password, fullName string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, fullName, phone, city string) error
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, password_hash, full_name,
	COALESCE(phone,''), COALESCE(city,''), is_active, created_at, updated_at`

// Create inserts a user with its profile seeded from the registration form
// and returns the new ID. The email is normalized to lower case; phone and
// city start empty and are filled in later through the profile flow.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name) VALUES (?,?,?)",
		email, hash, fullName)
	if err != nil {
		// MySQL error 1062 = duplicate key on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// UpdateProfile updates the mutable profile fields (full name, phone, city)
// keyed by user id. Email is deliberately not part of the statement.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName, phone, city string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET full_name=?, phone=NULLIF(?,''), city=NULLIF(?,'') WHERE id=?",
		fullName, phone, city, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update, so
	// confirm existence before reporting not found.
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Phone, &u.City, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
