package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid payment status")
	ErrPaidConflict       = apperror.New(http.StatusConflict, "resort already has a paid booking covering this check-in date")
	ErrPendingLimitHit    = apperror.New(http.StatusConflict, "pending booking limit reached for this check-in date")
	ErrInvalidGuestCount  = apperror.New(http.StatusBadRequest, "guest count must be between 1 and 20")
	ErrGuestNameRequired  = apperror.New(http.StatusBadRequest, "guest name is required")
	ErrGuestEmailRequired = apperror.New(http.StatusBadRequest, "guest email is required")
)

// PaymentStatus tracks whether a booking's payment has been captured.
// Anything other than paid counts as a pending hold.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

// Booking is a persisted reservation for a resort stay.
type Booking struct {
	ID            int64
	ResortID      int64
	ResortName    string
	GuestName     string
	Email         string
	Phone         string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalPrice    int
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Reference is the human-facing booking code shown on confirmations.
func (b *Booking) Reference() string {
	return fmt.Sprintf("RB%04d", b.ID)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	ResortID      int64
	PaymentStatus string
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
