package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resortwale/booking-backend/internal/pkg/request"
	"github.com/resortwale/booking-backend/internal/pkg/response"
	"github.com/resortwale/booking-backend/internal/resort"
)

type Handler struct {
	service resort.Service
}

func NewHandler(service resort.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateResortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), resort.CreateRequest{
		Name:            req.Name,
		Location:        req.Location,
		Description:     req.Description,
		Price:           req.Price,
		PeakPrice:       req.PeakPrice,
		OffPeakPrice:    req.OffPeakPrice,
		PeakSeasonStart: req.PeakSeasonStart,
		PeakSeasonEnd:   req.PeakSeasonEnd,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResortResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	res, err := h.service.GetWithPricing(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResortResponse(res))
}

func (h *Handler) List(c *gin.Context) {
	var req ListResortsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := resort.Filter{
		Keyword:   req.Keyword,
		Available: req.Available,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	resorts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ResortResponse, len(resorts))
	for i, r := range resorts {
		items[i] = NewResortResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	var req UpdateResortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Update(c.Request.Context(), uri.ID, resort.UpdateRequest{
		Name:            req.Name,
		Location:        req.Location,
		Description:     req.Description,
		Price:           req.Price,
		Available:       req.Available,
		PeakPrice:       req.PeakPrice,
		OffPeakPrice:    req.OffPeakPrice,
		PeakSeasonStart: req.PeakSeasonStart,
		PeakSeasonEnd:   req.PeakSeasonEnd,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResortResponse(res))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPriceRule creates or overwrites the day-type rate override for a resort.
func (h *Handler) SetPriceRule(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	var req SetPriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rule, err := h.service.SetPriceRule(c.Request.Context(), uri.ID, req.DayType, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *Handler) RemovePriceRule(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	dayType := c.Param("dayType")
	if err := h.service.RemovePriceRule(c.Request.Context(), uri.ID, dayType); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListPriceRules(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	rules, err := h.service.ListPriceRules(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if rules == nil {
		rules = []resort.PriceRule{}
	}
	c.JSON(http.StatusOK, rules)
}
