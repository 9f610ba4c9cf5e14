package mail

import (
	"fmt"
	"os"
	"strconv"

	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/booking_models"
	gomail "gopkg.in/gomail.v2"
)

// SendBookingAlert emails the configured operator address when a paid
// booking lands. It is strictly best-effort: missing SMTP configuration or
// delivery failure is logged and never affects the booking itself.
func SendBookingAlert(booking *booking_models.Booking) {
	to := os.Getenv("BOOKING_ALERT_EMAIL")
	host := os.Getenv("SMTP_HOST")
	if to == "" || host == "" {
		return
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	total := 0
	if booking.TotalAmountPaid != nil {
		total = *booking.TotalAmountPaid
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New paid booking %s", booking.Token))
	m.SetBody("text/plain", fmt.Sprintf(
		"Token: %s\nName: %s\nNumber: %s\nPackage: %s\nMode: %s\nTotal paid: %d\n",
		booking.Token, booking.Name, booking.Number, booking.Package, booking.PaymentMode, total))

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		logger.ErrorLogger.Errorf("Failed to send booking alert for %s: %v", booking.Token, err)
		return
	}
	logger.InfoLogger.Infof("Booking alert sent for token %s", booking.Token)
}
