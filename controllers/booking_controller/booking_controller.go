package booking_controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/models/booking_models"
	"github.com/carkumbh/backend/utils"
)

const maxTokenAttempts = 25

// screenshotFolder is where payment-evidence uploads land in the blob store.
const screenshotFolder = "carkumbh/screenshots"

// BookingController handles the manual booking path and the admin booking
// surface. The payment-verified path lives in payment_controller.
type BookingController struct {
	DB         *pgxpool.Pool
	Cloudinary clients.CloudinaryClientWrapper
}

func NewBookingController(db *pgxpool.Pool, cld clients.CloudinaryClientWrapper) *BookingController {
	return &BookingController{DB: db, Cloudinary: cld}
}

// CreateBooking creates a cash or manually-evidenced online booking. Online
// manual bookings may attach a payment screenshot, which is uploaded to the
// blob store before the record is written.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	name := c.PostForm("name")
	number := c.PostForm("number")
	address := c.PostForm("address")
	packageID := c.PostForm("package")
	paymentMode := c.PostForm("paymentMode")

	if name == "" || number == "" || address == "" || packageID == "" || paymentMode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all required fields"})
		return
	}
	if paymentMode != booking_models.PaymentModeCash && paymentMode != booking_models.PaymentModeOnline {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment mode"})
		return
	}

	var screenshotURL, screenshotPublicID *string
	if paymentMode == booking_models.PaymentModeOnline {
		fileHeader, err := c.FormFile("screenshot")
		if err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading screenshot"})
				return
			}
			defer file.Close()

			url, publicID, err := bc.Cloudinary.UploadImage(c.Request.Context(), file, screenshotFolder)
			if err != nil {
				logger.ErrorLogger.Errorf("Screenshot upload failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading screenshot"})
				return
			}
			screenshotURL = &url
			screenshotPublicID = &publicID
		}
	}

	var created *booking_models.Booking
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		booking, err := booking_models.NewBooking(utils.GenerateBookingToken(), name, number, address, packageID, paymentMode)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
			return
		}
		booking.IsPaid = paymentMode == booking_models.PaymentModeOnline
		booking.ScreenshotURL = screenshotURL
		booking.ScreenshotPublicID = screenshotPublicID

		created, err = booking_models.CreateBooking(c.Request.Context(), bc.DB, booking)
		if err != nil {
			if booking_models.IsDuplicateToken(err) {
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
			return
		}
		break
	}
	if created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetAllBookings lists every booking, newest first.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := booking_models.GetAllBookings(c.Request.Context(), bc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID returns one booking.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, id)
	if err != nil {
		if err == booking_models.ErrBookingNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// TogglePaidStatus flips the paid flag on a booking. Meant for cash
// bookings settled at the venue.
func (bc *BookingController) TogglePaidStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := booking_models.ToggleBookingPaid(c.Request.Context(), bc.DB, id)
	if err != nil {
		if err == booking_models.ErrBookingNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking and, best-effort, its uploaded screenshot.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, id)
	if err != nil {
		if err == booking_models.ErrBookingNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch booking"})
		return
	}

	if booking.ScreenshotPublicID != nil {
		if err := bc.Cloudinary.DestroyImage(c.Request.Context(), *booking.ScreenshotPublicID); err != nil {
			// Orphaned blobs are preferable to undeletable bookings.
			logger.ErrorLogger.Errorf("Failed to delete screenshot %s: %v", *booking.ScreenshotPublicID, err)
		}
	}

	if err := booking_models.DeleteBooking(c.Request.Context(), bc.DB, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking removed"})
}

// DeleteAllBookings wipes the booking table, releasing uploaded screenshots
// first.
func (bc *BookingController) DeleteAllBookings(c *gin.Context) {
	bc.destroyScreenshots(c, "")

	count, err := booking_models.DeleteAllBookings(c.Request.Context(), bc.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d bookings deleted", count)})
}

// DeleteBookingsByPackage removes all bookings for one package.
func (bc *BookingController) DeleteBookingsByPackage(c *gin.Context) {
	packageID := c.Param("packageType")
	bc.destroyScreenshots(c, packageID)

	count, err := booking_models.DeleteBookingsByPackage(c.Request.Context(), bc.DB, packageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d bookings with package %s deleted", count, packageID)})
}

func (bc *BookingController) destroyScreenshots(c *gin.Context, packageID string) {
	ids, err := booking_models.ListScreenshotPublicIDs(c.Request.Context(), bc.DB, packageID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list screenshots for cleanup: %v", err)
		return
	}
	for _, id := range ids {
		if err := bc.Cloudinary.DestroyImage(c.Request.Context(), id); err != nil {
			logger.ErrorLogger.Errorf("Failed to delete screenshot %s: %v", id, err)
		}
	}
}
