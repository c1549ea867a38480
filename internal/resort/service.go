package resort

import (
	"context"
	"regexp"
	"strings"

	"github.com/resortwale/booking-backend/internal/pricing"
)

var seasonBoundaryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

type CreateRequest struct {
	Name            string
	Location        string
	Description     string
	Price           int
	PeakPrice       *int
	OffPeakPrice    *int
	PeakSeasonStart *string
	PeakSeasonEnd   *string
}

type UpdateRequest struct {
	Name            *string
	Location        *string
	Description     *string
	Price           *int
	Available       *bool
	PeakPrice       *int
	OffPeakPrice    *int
	PeakSeasonStart *string
	PeakSeasonEnd   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resort, error)
	GetByID(ctx context.Context, id int64) (*Resort, error)
	GetWithPricing(ctx context.Context, id int64) (*Resort, error)
	List(ctx context.Context, filter Filter) ([]*Resort, int, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Resort, error)
	Delete(ctx context.Context, id int64) error

	SetPriceRule(ctx context.Context, resortID int64, dayType string, price int) (*PriceRule, error)
	RemovePriceRule(ctx context.Context, resortID int64, dayType string) error
	ListPriceRules(ctx context.Context, resortID int64) ([]PriceRule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validSeasonBoundary(b *string) bool {
	return b == nil || seasonBoundaryRe.MatchString(*b)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resort, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if !validSeasonBoundary(req.PeakSeasonStart) || !validSeasonBoundary(req.PeakSeasonEnd) {
		return nil, ErrInvalidSeason
	}

	res := &Resort{
		Name:            strings.TrimSpace(req.Name),
		Location:        req.Location,
		Description:     req.Description,
		Price:           req.Price,
		Available:       true,
		PeakPrice:       req.PeakPrice,
		OffPeakPrice:    req.OffPeakPrice,
		PeakSeasonStart: req.PeakSeasonStart,
		PeakSeasonEnd:   req.PeakSeasonEnd,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Resort, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetWithPricing(ctx context.Context, id int64) (*Resort, error) {
	return s.repo.GetWithPricing(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resort, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Resort, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		res.Location = *req.Location
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		res.Price = *req.Price
	}
	if req.Available != nil {
		res.Available = *req.Available
	}
	if req.PeakPrice != nil {
		res.PeakPrice = req.PeakPrice
	}
	if req.OffPeakPrice != nil {
		res.OffPeakPrice = req.OffPeakPrice
	}
	if req.PeakSeasonStart != nil {
		if !validSeasonBoundary(req.PeakSeasonStart) {
			return nil, ErrInvalidSeason
		}
		res.PeakSeasonStart = req.PeakSeasonStart
	}
	if req.PeakSeasonEnd != nil {
		if !validSeasonBoundary(req.PeakSeasonEnd) {
			return nil, ErrInvalidSeason
		}
		res.PeakSeasonEnd = req.PeakSeasonEnd
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetPriceRule(ctx context.Context, resortID int64, dayType string, price int) (*PriceRule, error) {
	dt := pricing.DayType(dayType)
	if dt != pricing.DayTypeFriday && dt != pricing.DayTypeWeekend && dt != pricing.DayTypeWeekday {
		return nil, ErrInvalidDayType
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	// Validate resort exists before attaching a rule.
	if _, err := s.repo.GetByID(ctx, resortID); err != nil {
		return nil, err
	}

	rule := &PriceRule{
		ResortID: resortID,
		DayType:  dt,
		Price:    price,
	}
	if err := s.repo.UpsertPriceRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) RemovePriceRule(ctx context.Context, resortID int64, dayType string) error {
	dt := pricing.DayType(dayType)
	if dt != pricing.DayTypeFriday && dt != pricing.DayTypeWeekend && dt != pricing.DayTypeWeekday {
		return ErrInvalidDayType
	}
	return s.repo.DeletePriceRule(ctx, resortID, dayType)
}

func (s *service) ListPriceRules(ctx context.Context, resortID int64) ([]PriceRule, error) {
	if _, err := s.repo.GetByID(ctx, resortID); err != nil {
		return nil, err
	}
	return s.repo.ListPriceRules(ctx, resortID)
}
