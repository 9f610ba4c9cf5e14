package db

import (
	"context"
	"fmt"
	"time"
)

// The token column carries a UNIQUE constraint on purpose: booking creation
// relies on the database rejecting a colliding token so the caller can retry
// generation instead of doing a racy check-then-insert.
const createBookingsTableSQL = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY,
    token TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    number TEXT NOT NULL,
    address TEXT NOT NULL,
    package TEXT NOT NULL,
    payment_mode TEXT NOT NULL,
    is_paid BOOLEAN NOT NULL DEFAULT FALSE,
    screenshot_url TEXT,
    screenshot_public_id TEXT,
    razorpay_order_id TEXT,
    razorpay_payment_id TEXT,
    gst_amount INTEGER NOT NULL DEFAULT 0,
    total_amount_paid INTEGER,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createSiteConfigTableSQL = `
CREATE TABLE IF NOT EXISTS site_config (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createAdminsTableSQL = `
CREATE TABLE IF NOT EXISTS admins (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createStudentsTableSQL = `
CREATE TABLE IF NOT EXISTS students (
    id UUID PRIMARY KEY,
    student_name TEXT NOT NULL,
    whatsapp_number TEXT NOT NULL,
    highest_qualification TEXT NOT NULL,
    working_in_it BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

// RunMigrations creates missing tables. Statements are idempotent so this is
// safe to run on every startup.
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmts := []string{
		createBookingsTableSQL,
		createSiteConfigTableSQL,
		createAdminsTableSQL,
		createStudentsTableSQL,
	}
	for _, stmt := range stmts {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
