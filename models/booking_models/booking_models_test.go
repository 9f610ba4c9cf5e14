package booking_models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	b, err := NewBooking("A1B2C3", "Asha", "9876543210", "12 MG Road", "999", PaymentModeCash)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, "A1B2C3", b.Token)
	assert.Equal(t, PaymentModeCash, b.PaymentMode)
	assert.False(t, b.IsPaid)
	assert.Nil(t, b.RazorpayOrderID)
	assert.Nil(t, b.TotalAmountPaid)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestIsDuplicateToken(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "bookings_token_key"}
	assert.True(t, IsDuplicateToken(unique))
	assert.True(t, IsDuplicateToken(fmt.Errorf("insert failed: %w", unique)))

	assert.False(t, IsDuplicateToken(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateToken(errors.New("connection reset")))
	assert.False(t, IsDuplicateToken(nil))
}
