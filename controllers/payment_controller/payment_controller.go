package payment_controller

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/booking_models"
	"github.com/carkumbh/backend/models/site_config_models"
	"github.com/carkumbh/backend/pricing"
	"github.com/carkumbh/backend/utils"
	"github.com/carkumbh/backend/utils/mail"
)

// maxTokenAttempts bounds the insert-retry loop for booking tokens. The
// token space is large relative to booking volume, so hitting this many
// consecutive collisions means something is wrong with the store.
const maxTokenAttempts = 25

// BookingStore is the slice of booking persistence the payment flow needs.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error)
}

// PackageCatalog resolves package ids against the current catalog snapshot.
type PackageCatalog interface {
	FindPackage(ctx context.Context, id string) (site_config_models.PackageEntry, bool)
}

// PaymentController handles order creation and payment verification.
type PaymentController struct {
	Store     BookingStore
	Catalog   PackageCatalog
	Razorpay  clients.RazorpayClientWrapper
	KeySecret string
	Currency  string
}

// NewPaymentController wires the controller against Postgres and the real
// Razorpay gateway. The key pair is mandatory; starting without it would
// leave payments silently broken.
func NewPaymentController(db *pgxpool.Pool) *PaymentController {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		panic("Required Razorpay environment variables not set")
	}

	currency := os.Getenv("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}

	return &PaymentController{
		Store:     booking_models.NewPgStore(db),
		Catalog:   site_config_models.NewEventPackageCatalog(db),
		Razorpay:  clients.NewRazorpayClient(keyID, keySecret),
		KeySecret: keySecret,
		Currency:  currency,
	}
}

// CreateOrderRequest carries the customer tuple for a new payment order.
type CreateOrderRequest struct {
	Name    string `json:"name"`
	Number  string `json:"number"`
	Address string `json:"address"`
	Package string `json:"package"`
}

// CreateOrder validates the package against the current catalog, computes
// the GST-inclusive total and opens a gateway order for it.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if req.Name == "" || req.Number == "" || req.Address == "" || req.Package == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	entry, ok := pc.Catalog.FindPackage(c.Request.Context(), req.Package)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package selected"})
		return
	}

	breakdown := pricing.CalculateBreakdown(entry.BasePrice)

	// Gateway amounts are in the minor unit (paise). The customer fields ride
	// along as notes for manual reconciliation; nothing reads them back
	// programmatically.
	orderData := map[string]interface{}{
		"amount":   breakdown.Total * 100,
		"currency": pc.Currency,
		"receipt":  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
		"notes": map[string]interface{}{
			"name":       req.Name,
			"number":     req.Number,
			"address":    req.Address,
			"package":    req.Package,
			"baseAmount": strconv.Itoa(breakdown.Base),
			"gstAmount":  strconv.Itoa(breakdown.GST),
		},
	}

	order, err := pc.Razorpay.CreateOrder(orderData)
	if err != nil {
		logger.ErrorLogger.Errorf("Razorpay order creation failed for package %s: %v", req.Package, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderId":     order["id"],
		"amount":      order["amount"],
		"currency":    order["currency"],
		"baseAmount":  breakdown.Base,
		"gstAmount":   breakdown.GST,
		"totalAmount": breakdown.Total,
	})
}

// VerifyPaymentRequest is the gateway callback echoed by the client after
// checkout completes.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Name              string `json:"name"`
	Number            string `json:"number"`
	Address           string `json:"address"`
	Package           string `json:"package"`
}

// VerifyPayment authenticates a gateway callback and, only after the
// signature checks out, materializes a paid booking with a unique token.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment verification data missing"})
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment verification data missing"})
		return
	}

	// The signature is the sole proof the gateway authorized this payment.
	// It must be checked before anything touches the store.
	if err := pc.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		logger.ErrorLogger.Errorf("Payment signature mismatch for order %s payment %s", req.RazorpayOrderID, req.RazorpayPaymentID)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment verification failed"})
		return
	}

	// Amounts are recomputed from the request-supplied package id; the
	// catalog is not re-consulted here, so a catalog edit between order
	// creation and verification does not block the booking. Catalog writes
	// enforce that every id spells its own base price.
	base, err := strconv.Atoi(req.Package)
	if err != nil || base < 0 {
		// The signature already checked out, so the customer has paid.
		// Log the ids an operator needs to reconcile by hand.
		logger.ErrorLogger.Errorf(
			"Verified payment carries unusable package id (order=%s payment=%s package=%q)",
			req.RazorpayOrderID, req.RazorpayPaymentID, req.Package)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package amount"})
		return
	}
	breakdown := pricing.CalculateBreakdown(base)

	booking, err := pc.createPaidBooking(c.Request.Context(), &req, breakdown)
	if err != nil {
		// The customer has already paid at the gateway. Log everything an
		// operator needs to reconcile by hand; the client only sees a
		// generic failure.
		logger.ErrorLogger.Errorf(
			"Booking persistence failed after verified payment (order=%s payment=%s name=%s number=%s package=%s total=%d): %v",
			req.RazorpayOrderID, req.RazorpayPaymentID, req.Name, req.Number, req.Package, breakdown.Total, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Payment verification failed"})
		return
	}

	go mail.SendBookingAlert(booking)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Payment verified and booking created",
		"token":   booking.Token,
		"booking": booking,
	})
}

// verifySignature recomputes the expected HMAC-SHA256 signature over
// "orderID|paymentID" and compares it in constant time. The secret never
// appears in logs or responses.
func (pc *PaymentController) verifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(pc.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// createPaidBooking persists an online booking, regenerating the token when
// the database reports a collision. The insert itself is the uniqueness
// check; there is no separate existence lookup to race against.
func (pc *PaymentController) createPaidBooking(ctx context.Context, req *VerifyPaymentRequest, breakdown pricing.Breakdown) (*booking_models.Booking, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token := utils.GenerateBookingToken()

		booking, err := booking_models.NewBooking(token, req.Name, req.Number, req.Address, req.Package, booking_models.PaymentModeOnline)
		if err != nil {
			return nil, err
		}
		booking.IsPaid = true
		booking.RazorpayOrderID = &req.RazorpayOrderID
		booking.RazorpayPaymentID = &req.RazorpayPaymentID
		booking.GSTAmount = breakdown.GST
		total := breakdown.Total
		booking.TotalAmountPaid = &total

		created, err := pc.Store.CreateBooking(ctx, booking)
		if err != nil {
			if booking_models.IsDuplicateToken(err) {
				logger.WarnLogger.Warnf("Booking token %s collided, regenerating (attempt %d)", token, attempt+1)
				continue
			}
			return nil, err
		}
		return created, nil
	}
	return nil, ErrTokenExhausted
}

// GetPriceBreakdown returns the GST breakdown for a catalog package so
// clients can show the cost before opening checkout.
func (pc *PaymentController) GetPriceBreakdown(c *gin.Context) {
	packageID := c.Param("package")

	entry, ok := pc.Catalog.FindPackage(c.Request.Context(), packageID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package"})
		return
	}

	breakdown := pricing.CalculateBreakdown(entry.BasePrice)
	c.JSON(http.StatusOK, gin.H{
		"baseAmount":  breakdown.Base,
		"gstAmount":   breakdown.GST,
		"totalAmount": breakdown.Total,
		"breakdown": gin.H{
			"gst": breakdown.GST,
		},
	})
}
