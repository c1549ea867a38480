package http

import (
	"time"

	"github.com/resortwale/booking-backend/internal/booking"
	"github.com/resortwale/booking-backend/internal/pkg/request"
)

// AvailabilityRequest defines query parameters for the availability check.
type AvailabilityRequest struct {
	ResortID      int64     `form:"resort_id" binding:"required,min=1"`
	CheckIn       time.Time `form:"check_in" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	CheckOut      time.Time `form:"check_out" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExpectedPrice *int      `form:"expected_price" binding:"omitempty,min=0"`
}

// Validate performs custom validation for AvailabilityRequest.
func (r *AvailabilityRequest) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type CreateBookingRequest struct {
	ResortID      int64     `json:"resort_id" binding:"required,min=1"`
	GuestName     string    `json:"guest_name" binding:"required,min=2,max=50"`
	Email         string    `json:"email" binding:"required,email"`
	Phone         string    `json:"phone" binding:"required,min=7,max=15"`
	CheckIn       time.Time `json:"check_in" binding:"required"`
	CheckOut      time.Time `json:"check_out" binding:"required"`
	Guests        int       `json:"guests" binding:"required,min=1,max=20"`
	ExpectedPrice *int      `json:"expected_price" binding:"omitempty,min=0"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ResortID      int64      `form:"resort_id" binding:"omitempty,min=1"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=pending paid failed"`
	CheckInFrom   *time.Time `form:"check_in_from" time_format:"2006-01-02T15:04:05Z07:00"`
	CheckInTo     *time.Time `form:"check_in_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=check_in check_out created_at payment_status"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid failed"`
}

type ResortTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	Resort        ResortTag `json:"resort"`
	GuestName     string    `json:"guest_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalPrice    int       `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference(),
		Resort:        ResortTag{ID: b.ResortID, Name: b.ResortName},
		GuestName:     b.GuestName,
		Email:         b.Email,
		Phone:         b.Phone,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
