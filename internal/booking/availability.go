package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/resortwale/booking-backend/internal/block"
	"github.com/resortwale/booking-backend/internal/pricing"
	"github.com/resortwale/booking-backend/internal/resort"
)

// MaxPendingHolds is the number of concurrent unpaid bookings tolerated per
// resort per check-in date. A third hold is rejected until one is verified or
// released. This is a deliberate overbooking-tolerance policy.
const MaxPendingHolds = 2

// defaultReadTimeout bounds every collaborator read during a check. A timed
// out read degrades to a conservative "not available", never to "available".
const defaultReadTimeout = 5 * time.Second

const msgCheckFailed = "Failed to check availability"

// ResortStore loads a resort together with its pricing rules in one read.
type ResortStore interface {
	GetWithPricing(ctx context.Context, id int64) (*resort.Resort, error)
}

// BlockStore reports whether a calendar date is blocked for a resort by the
// given source. An absent block table reads as "not blocked".
type BlockStore interface {
	IsDateBlocked(ctx context.Context, resortID int64, date time.Time, source block.Source) (bool, error)
}

// BookingCounter counts existing bookings whose stay covers a check-in
// timestamp, split by whether payment has been captured.
type BookingCounter interface {
	CountOverlapping(ctx context.Context, resortID int64, checkIn time.Time, paid bool) (int, error)
}

// Verdict is the result of one availability evaluation. Rejections carry a
// reason string suitable for direct display; price mismatches also carry the
// authoritative total so the client can retry with corrected data.
type Verdict struct {
	Available    bool           `json:"available"`
	Reason       string         `json:"error,omitempty"`
	CorrectPrice *int           `json:"correct_price,omitempty"`
	Quote        *pricing.Quote `json:"quote,omitempty"`
}

func unavailable(reason string) Verdict {
	return Verdict{Available: false, Reason: reason}
}

// Checker decides whether a booking window is bookable. It is read-only:
// checking availability never mutates state, so repeated checks with no
// intervening writes return identical verdicts.
type Checker struct {
	resorts     ResortStore
	blocks      BlockStore
	bookings    BookingCounter
	resolver    *pricing.Resolver
	readTimeout time.Duration
}

// NewChecker wires an availability checker over its three collaborator stores.
func NewChecker(resorts ResortStore, blocks BlockStore, bookings BookingCounter, resolver *pricing.Resolver) *Checker {
	return &Checker{
		resorts:     resorts,
		blocks:      blocks,
		bookings:    bookings,
		resolver:    resolver,
		readTimeout: defaultReadTimeout,
	}
}

// checkInDateLabel renders the check-in date the way rejection messages show it.
func (c *Checker) checkInDateLabel(checkIn time.Time) string {
	return checkIn.In(c.resolver.Location()).Format("2006-01-02")
}

func msgAdminBlocked(date string) string {
	return fmt.Sprintf("Resort is not available for check-in on %s", date)
}

func msgOwnerBlocked() string {
	return "This date is blocked by the resort owner. Please choose another date."
}

func msgPaidConflict(date string) string {
	return fmt.Sprintf("This resort is already booked for %s. Please choose a different date.", date)
}

func msgPendingLimit(date string) string {
	return fmt.Sprintf("Maximum %d pending bookings allowed for %s. Please wait for verification or choose another date.", MaxPendingHolds, date)
}

func msgPriceMismatch(correct, got int) string {
	return fmt.Sprintf("Price mismatch. Expected: %d, Got: %d. Please refresh and try again.", correct, got)
}

// Check evaluates a booking window against pricing, date blocks and existing
// bookings, short-circuiting on the first failure. Checks run cheapest first
// so the caller gets the most actionable rejection.
//
// The only returned error is ErrInvalidTimeRange for a check-out not after
// check-in; the caller should have validated that. Every infrastructure
// failure is absorbed into a conservative "not available" verdict.
func (c *Checker) Check(ctx context.Context, resortID int64, checkIn, checkOut time.Time, expectedPrice *int) (Verdict, error) {
	// 1. Resort existence, loaded with pricing rules in one read.
	res, err := c.getResort(ctx, resortID)
	if err != nil {
		if errors.Is(err, resort.ErrNotFound) {
			return unavailable("Resort not found"), nil
		}
		log.Printf("availability: resort read failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}

	// 2. Authoritative price and reconciliation against the client's estimate.
	quote, err := c.resolver.Resolve(res.Rates(), checkIn, checkOut)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidStayRange) {
			return Verdict{}, ErrInvalidTimeRange
		}
		log.Printf("availability: price resolution failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}

	if !pricing.PriceMatches(expectedPrice, quote.TotalPrice) {
		correct := quote.TotalPrice
		v := unavailable(msgPriceMismatch(correct, *expectedPrice))
		v.CorrectPrice = &correct
		return v, nil
	}

	date := c.checkInDateLabel(checkIn)

	// 3. Administrative date block.
	blocked, err := c.isBlocked(ctx, resortID, checkIn, block.SourceAdmin)
	if err != nil {
		log.Printf("availability: admin block read failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}
	if blocked {
		return unavailable(msgAdminBlocked(date)), nil
	}

	// 4. Owner date block, distinct source and message.
	blocked, err = c.isBlocked(ctx, resortID, checkIn, block.SourceOwner)
	if err != nil {
		log.Printf("availability: owner block read failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}
	if blocked {
		return unavailable(msgOwnerBlocked()), nil
	}

	// 5. Paid booking covering the requested check-in.
	// The predicate inspects the check-in timestamp only, not the full
	// requested span against existing spans.
	paid, err := c.countOverlapping(ctx, resortID, checkIn, true)
	if err != nil {
		log.Printf("availability: paid booking count failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}
	if paid > 0 {
		return unavailable(msgPaidConflict(date)), nil
	}

	// 6. Pending-hold cap.
	pending, err := c.countOverlapping(ctx, resortID, checkIn, false)
	if err != nil {
		log.Printf("availability: pending booking count failed for resort %d: %v", resortID, err)
		return unavailable(msgCheckFailed), nil
	}
	if pending >= MaxPendingHolds {
		return unavailable(msgPendingLimit(date)), nil
	}

	return Verdict{Available: true, Quote: &quote}, nil
}

func (c *Checker) getResort(ctx context.Context, resortID int64) (*resort.Resort, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	return c.resorts.GetWithPricing(ctx, resortID)
}

func (c *Checker) isBlocked(ctx context.Context, resortID int64, checkIn time.Time, source block.Source) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	return c.blocks.IsDateBlocked(ctx, resortID, checkIn.In(c.resolver.Location()), source)
}

func (c *Checker) countOverlapping(ctx context.Context, resortID int64, checkIn time.Time, paidOnly bool) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()
	return c.bookings.CountOverlapping(ctx, resortID, checkIn, paidOnly)
}

// UnavailableError carries a rejection verdict across the service boundary so
// HTTP handlers can surface the reason and corrected price verbatim.
type UnavailableError struct {
	Verdict Verdict
}

func (e *UnavailableError) Error() string {
	return e.Verdict.Reason
}
