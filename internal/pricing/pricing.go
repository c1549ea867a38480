package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidStayRange = errors.New("check-out must be after check-in")
)

// PlatformFeeRate is the surcharge applied on the base booking amount.
const PlatformFeeRate = 0.015

// DayType classifies a check-in date for dynamic pricing.
type DayType string

const (
	DayTypeFriday  DayType = "friday"
	DayTypeWeekend DayType = "weekend"
	DayTypeWeekday DayType = "weekday"
)

// Rule is a day-type-scoped override of a resort's nightly rate.
// A resort has at most one rule per day type.
type Rule struct {
	DayType DayType
	Price   int
}

// Rates is the pre-loaded pricing data for one resort. All prices are whole
// rupees. The resolver performs no I/O; callers load this in a single read.
type Rates struct {
	BasePrice int
	Rules     []Rule

	// Seasonal pricing, applied separately from day-type rules (display quotes).
	// Season boundaries are "MM-DD" strings so seasons recur every year.
	PeakPrice       *int
	OffPeakPrice    *int
	PeakSeasonStart string
	PeakSeasonEnd   string
}

// ruleFor returns the rule price for the given day type, or the base price
// when no rule exists. Absence of a rule is never an error.
func (r Rates) ruleFor(dt DayType) int {
	for _, rule := range r.Rules {
		if rule.DayType == dt {
			return rule.Price
		}
	}
	return r.BasePrice
}

// Quote is the authoritative price breakdown for a stay.
type Quote struct {
	NightlyRate int `json:"nightly_rate"`
	Nights      int `json:"nights"`
	BaseAmount  int `json:"base_amount"`
	PlatformFee int `json:"platform_fee"`
	TotalPrice  int `json:"total_price"`
}

// Resolver computes authoritative prices. The location decides which calendar
// day (and so which day of week) a check-in timestamp falls on.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a Resolver using the given location for calendar math.
// A nil location falls back to UTC.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Location returns the calendar location the resolver was configured with.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// DayTypeFor classifies the check-in date by its day of week.
func (r *Resolver) DayTypeFor(checkIn time.Time) DayType {
	switch checkIn.In(r.loc).Weekday() {
	case time.Friday:
		return DayTypeFriday
	case time.Saturday, time.Sunday:
		return DayTypeWeekend
	default:
		return DayTypeWeekday
	}
}

// Nights returns the chargeable night count for the stay, rounding partial
// days up. A check-out not strictly after check-in is an input error, never
// silently treated as one night.
func Nights(checkIn, checkOut time.Time) (int, error) {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0, ErrInvalidStayRange
	}

	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights, nil
}

// Resolve computes the authoritative price for a stay. The nightly rate is
// picked by the check-in date's day type alone, not the stay's full span.
func (r *Resolver) Resolve(rates Rates, checkIn, checkOut time.Time) (Quote, error) {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}

	nightlyRate := rates.ruleFor(r.DayTypeFor(checkIn))

	baseAmount := nightlyRate * nights
	platformFee := int(math.Round(float64(baseAmount) * PlatformFeeRate))

	return Quote{
		NightlyRate: nightlyRate,
		Nights:      nights,
		BaseAmount:  baseAmount,
		PlatformFee: platformFee,
		TotalPrice:  baseAmount + platformFee,
	}, nil
}
