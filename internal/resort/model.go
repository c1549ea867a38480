package resort

import (
	"net/http"
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/apperror"
	"github.com/resortwale/booking-backend/internal/pricing"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "resort not found")
	ErrEmptyName      = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidPrice   = apperror.New(http.StatusBadRequest, "price must be a positive amount")
	ErrInvalidDayType = apperror.New(http.StatusBadRequest, "invalid day type")
	ErrInvalidSeason  = apperror.New(http.StatusBadRequest, "season boundaries must be MM-DD")
	ErrRuleNotFound   = apperror.New(http.StatusNotFound, "price rule not found")
)

// Resort is a bookable property listed on the platform.
// All prices are whole rupees.
type Resort struct {
	ID          int64
	Name        string
	Location    string
	Description string
	Price       int // base nightly rate
	Available   bool

	// Optional seasonal pricing ("MM-DD" boundaries, may cross year end).
	PeakPrice       *int
	OffPeakPrice    *int
	PeakSeasonStart *string
	PeakSeasonEnd   *string

	// Day-type overrides, loaded with the resort by GetWithPricing.
	PriceRules []PriceRule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceRule is a persisted day-type rate override for a resort.
// At most one rule exists per (resort, day type).
type PriceRule struct {
	ID       int64           `json:"id"`
	ResortID int64           `json:"resort_id"`
	DayType  pricing.DayType `json:"day_type"`
	Price    int             `json:"price"`
}

// Rates converts the resort's loaded pricing data into the resolver's input.
func (r *Resort) Rates() pricing.Rates {
	rules := make([]pricing.Rule, 0, len(r.PriceRules))
	for _, pr := range r.PriceRules {
		rules = append(rules, pricing.Rule{DayType: pr.DayType, Price: pr.Price})
	}

	rates := pricing.Rates{
		BasePrice:    r.Price,
		Rules:        rules,
		PeakPrice:    r.PeakPrice,
		OffPeakPrice: r.OffPeakPrice,
	}
	if r.PeakSeasonStart != nil {
		rates.PeakSeasonStart = *r.PeakSeasonStart
	}
	if r.PeakSeasonEnd != nil {
		rates.PeakSeasonEnd = *r.PeakSeasonEnd
	}
	return rates
}

// Filter defines parameters for listing resorts.
type Filter struct {
	Keyword   string
	Available *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
