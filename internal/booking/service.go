package booking

import (
	"context"
	"errors"
	"strings"
	"time"
)

type CreateRequest struct {
	ResortID      int64
	GuestName     string
	Email         string
	Phone         string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	ExpectedPrice *int
}

type Service interface {
	// CheckAvailability evaluates a booking window without writing anything.
	CheckAvailability(ctx context.Context, resortID int64, checkIn, checkOut time.Time, expectedPrice *int) (Verdict, error)

	// Create runs the availability check and, on success, inserts the booking
	// as a pending hold. The insert re-validates the capacity limits in its
	// own transaction, so a racing request cannot push past them.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) (*Booking, error)
}

type service struct {
	repo    Repository
	checker *Checker
}

func NewService(repo Repository, checker *Checker) Service {
	return &service{
		repo:    repo,
		checker: checker,
	}
}

func (s *service) CheckAvailability(ctx context.Context, resortID int64, checkIn, checkOut time.Time, expectedPrice *int) (Verdict, error) {
	return s.checker.Check(ctx, resortID, checkIn, checkOut, expectedPrice)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidTimeRange
	}
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, ErrGuestNameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrGuestEmailRequired
	}
	if req.Guests < 1 || req.Guests > 20 {
		return nil, ErrInvalidGuestCount
	}

	verdict, err := s.checker.Check(ctx, req.ResortID, req.CheckIn, req.CheckOut, req.ExpectedPrice)
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, &UnavailableError{Verdict: verdict}
	}

	b := &Booking{
		ResortID:      req.ResortID,
		GuestName:     strings.TrimSpace(req.GuestName),
		Email:         req.Email,
		Phone:         req.Phone,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Guests:        req.Guests,
		TotalPrice:    verdict.Quote.TotalPrice,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.CreateGuarded(ctx, b); err != nil {
		// A racing request may have taken the slot between the check and the
		// insert; surface the same rejection the check would have produced.
		date := s.checker.checkInDateLabel(req.CheckIn)
		switch {
		case errors.Is(err, ErrPaidConflict):
			return nil, &UnavailableError{Verdict: unavailable(msgPaidConflict(date))}
		case errors.Is(err, ErrPendingLimitHit):
			return nil, &UnavailableError{Verdict: unavailable(msgPendingLimit(date))}
		default:
			return nil, err
		}
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) (*Booking, error) {
	if !ValidPaymentStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
