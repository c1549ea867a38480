package http

import (
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/request"
	"github.com/resortwale/booking-backend/internal/resort"
)

type CreateResortRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=100"`
	Location        string  `json:"location" binding:"omitempty,max=200"`
	Description     string  `json:"description" binding:"omitempty,max=2000"`
	Price           int     `json:"price" binding:"required,min=1"`
	PeakPrice       *int    `json:"peak_price" binding:"omitempty,min=1"`
	OffPeakPrice    *int    `json:"off_peak_price" binding:"omitempty,min=1"`
	PeakSeasonStart *string `json:"peak_season_start"`
	PeakSeasonEnd   *string `json:"peak_season_end"`
}

type UpdateResortRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	Location        *string `json:"location" binding:"omitempty,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Price           *int    `json:"price" binding:"omitempty,min=1"`
	Available       *bool   `json:"available"`
	PeakPrice       *int    `json:"peak_price" binding:"omitempty,min=1"`
	OffPeakPrice    *int    `json:"off_peak_price" binding:"omitempty,min=1"`
	PeakSeasonStart *string `json:"peak_season_start"`
	PeakSeasonEnd   *string `json:"peak_season_end"`
}

type ListResortsRequest struct {
	request.ListParams
	Keyword   string `form:"keyword" binding:"omitempty,max=100"`
	Available *bool  `form:"available"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name price created_at"`
}

type SetPriceRuleRequest struct {
	DayType string `json:"day_type" binding:"required,oneof=friday weekend weekday"`
	Price   int    `json:"price" binding:"required,min=1"`
}

type ResortResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Location        string             `json:"location"`
	Description     string             `json:"description"`
	Price           int                `json:"price"`
	Available       bool               `json:"available"`
	PeakPrice       *int               `json:"peak_price,omitempty"`
	OffPeakPrice    *int               `json:"off_peak_price,omitempty"`
	PeakSeasonStart *string            `json:"peak_season_start,omitempty"`
	PeakSeasonEnd   *string            `json:"peak_season_end,omitempty"`
	PriceRules      []resort.PriceRule `json:"price_rules,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewResortResponse(r *resort.Resort) ResortResponse {
	return ResortResponse{
		ID:              r.ID,
		Name:            r.Name,
		Location:        r.Location,
		Description:     r.Description,
		Price:           r.Price,
		Available:       r.Available,
		PeakPrice:       r.PeakPrice,
		OffPeakPrice:    r.OffPeakPrice,
		PeakSeasonStart: r.PeakSeasonStart,
		PeakSeasonEnd:   r.PeakSeasonEnd,
		PriceRules:      r.PriceRules,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
