package admin_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Admin is an administrator account. Only admins can reach the protected
// booking, student and site-config endpoints.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

var ErrAdminNotFound = errors.New("admin not found")

// MatchPassword checks a plaintext password against the stored hash.
func (a *Admin) MatchPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// GetAdminByEmail fetches an admin account by email.
func GetAdminByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*Admin, error) {
	a := &Admin{}
	err := db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error fetching admin: %w", err)
	}
	return a, nil
}

// GetAdminByID fetches an admin account by id.
func GetAdminByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Admin, error) {
	a := &Admin{}
	err := db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error fetching admin: %w", err)
	}
	return a, nil
}

// CreateAdmin hashes the password and inserts a new admin account.
func CreateAdmin(ctx context.Context, db *pgxpool.Pool, email, password string) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for admin: %w", err)
	}

	a := &Admin{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	_, err = db.Exec(ctx,
		`INSERT INTO admins (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return a, nil
}

// AdminExists reports whether any admin account has been created yet.
func AdminExists(ctx context.Context, db *pgxpool.Pool, email string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking admin existence: %w", err)
	}
	return exists, nil
}
