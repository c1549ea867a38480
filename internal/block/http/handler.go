package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resortwale/booking-backend/internal/block"
	"github.com/resortwale/booking-backend/internal/pkg/request"
	"github.com/resortwale/booking-backend/internal/pkg/response"
)

type Handler struct {
	service block.Service
	source  block.Source
}

// NewHandler creates a block handler bound to one block source, so the admin
// and owner surfaces register the same handlers against their own tables.
func NewHandler(service block.Service, source block.Source) *Handler {
	return &Handler{
		service: service,
		source:  source,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.BlockDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block_date must be YYYY-MM-DD"})
		return
	}

	b, err := h.service.BlockDate(c.Request.Context(), req.ResortID, date, h.source)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBlockResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	if err := h.service.UnblockDate(c.Request.Context(), h.source, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListByResort(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	blocks, err := h.service.ListByResort(c.Request.Context(), req.ID, h.source)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		items[i] = NewBlockResponse(b)
	}
	c.JSON(http.StatusOK, items)
}
