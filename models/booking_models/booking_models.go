package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carkumbh/backend/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Payment mode constants
const (
	PaymentModeCash   = "cash"
	PaymentModeOnline = "online"
)

// Booking represents one confirmed event reservation. Token is the
// customer-facing reference and is unique across all bookings.
type Booking struct {
	ID                 uuid.UUID `json:"id"`
	Token              string    `json:"token"`
	Name               string    `json:"name"`
	Number             string    `json:"number"`
	Address            string    `json:"address"`
	Package            string    `json:"package"`
	PaymentMode        string    `json:"paymentMode"`
	IsPaid             bool      `json:"isPaid"`
	ScreenshotURL      *string   `json:"screenshotUrl"`
	ScreenshotPublicID *string   `json:"screenshotPublicId"`
	RazorpayOrderID    *string   `json:"razorpayOrderId"`
	RazorpayPaymentID  *string   `json:"razorpayPaymentId"`
	GSTAmount          int       `json:"gstAmount"`
	TotalAmountPaid    *int      `json:"totalAmountPaid"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ErrBookingNotFound is returned when a booking id has no row.
var ErrBookingNotFound = errors.New("booking not found")

// NewBooking creates a Booking struct with a fresh id and timestamps.
func NewBooking(token, name, number, address, packageID, paymentMode string) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	now := time.Now()
	return &Booking{
		ID:          id,
		Token:       token,
		Name:        name,
		Number:      number,
		Address:     address,
		Package:     packageID,
		PaymentMode: paymentMode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsDuplicateToken reports whether an insert failed because the booking
// token collided with an existing row. Creation loops treat this as "try a
// new token", never as a fatal error.
func IsDuplicateToken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const bookingColumns = `
	id, token, name, number, address, package, payment_mode, is_paid,
	screenshot_url, screenshot_public_id, razorpay_order_id, razorpay_payment_id,
	gst_amount, total_amount_paid, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(
		&b.ID, &b.Token, &b.Name, &b.Number, &b.Address, &b.Package,
		&b.PaymentMode, &b.IsPaid, &b.ScreenshotURL, &b.ScreenshotPublicID,
		&b.RazorpayOrderID, &b.RazorpayPaymentID, &b.GSTAmount,
		&b.TotalAmountPaid, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking inserts a booking record. A colliding token surfaces as an
// error for which IsDuplicateToken returns true; the database, not a prior
// existence check, is the authority on token uniqueness.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	if booking.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID: %w", err)
		}
		booking.ID = id
	}
	if booking.CreatedAt.IsZero() {
		now := time.Now()
		booking.CreatedAt = now
		booking.UpdatedAt = now
	}

	_, err := db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		booking.ID, booking.Token, booking.Name, booking.Number, booking.Address,
		booking.Package, booking.PaymentMode, booking.IsPaid,
		booking.ScreenshotURL, booking.ScreenshotPublicID,
		booking.RazorpayOrderID, booking.RazorpayPaymentID,
		booking.GSTAmount, booking.TotalAmountPaid,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateToken(err) {
			return nil, fmt.Errorf("booking token %s already taken: %w", booking.Token, err)
		}
		logger.ErrorLogger.Errorf("Failed to insert booking with token %s: %v", booking.Token, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created with token %s (%s)", booking.ID, booking.Token, booking.PaymentMode)
	return booking, nil
}

// GetBookingByID fetches a booking record by its id.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Booking, error) {
	row := db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("database error fetching booking %s: %w", id, err)
	}
	return b, nil
}

// GetAllBookings returns every booking, newest first.
func GetAllBookings(ctx context.Context, db *pgxpool.Pool) ([]*Booking, error) {
	rows, err := db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ToggleBookingPaid flips is_paid on a booking and returns the updated row.
func ToggleBookingPaid(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Booking, error) {
	row := db.QueryRow(ctx, `
		UPDATE bookings SET is_paid = NOT is_paid, updated_at = $2
		WHERE id = $1
		RETURNING `+bookingColumns, id, time.Now())
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to toggle paid status for %s: %w", id, err)
	}
	return b, nil
}

// DeleteBooking removes one booking row.
func DeleteBooking(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListScreenshotPublicIDs returns the blob-store public ids of every booking
// that has an attached screenshot, optionally filtered by package. Used so
// deletes can release the uploaded artifacts.
func ListScreenshotPublicIDs(ctx context.Context, db *pgxpool.Pool, packageID string) ([]string, error) {
	query := `SELECT screenshot_public_id FROM bookings WHERE screenshot_public_id IS NOT NULL`
	args := []interface{}{}
	if packageID != "" {
		query += ` AND package = $1`
		args = append(args, packageID)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenshot ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan screenshot id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteAllBookings removes every booking and returns how many went.
func DeleteAllBookings(ctx context.Context, db *pgxpool.Pool) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteBookingsByPackage removes every booking for one package.
func DeleteBookingsByPackage(ctx context.Context, db *pgxpool.Pool, packageID string) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM bookings WHERE package = $1`, packageID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings for package %s: %w", packageID, err)
	}
	return tag.RowsAffected(), nil
}

// PgStore adapts the package functions to the narrow store interface the
// payment controller accepts.
type PgStore struct {
	DB *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{DB: db}
}

func (s *PgStore) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	return CreateBooking(ctx, s.DB, booking)
}
