package http

import (
	"time"

	"github.com/resortwale/booking-backend/internal/block"
)

type CreateBlockRequest struct {
	ResortID  int64  `json:"resort_id" binding:"required,min=1"`
	BlockDate string `json:"block_date" binding:"required,datetime=2006-01-02"`
}

type BlockResponse struct {
	ID        int64     `json:"id"`
	ResortID  int64     `json:"resort_id"`
	BlockDate string    `json:"block_date"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockResponse(b *block.Block) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		ResortID:  b.ResortID,
		BlockDate: b.BlockDate.Format("2006-01-02"),
		Source:    string(b.Source),
		CreatedAt: b.CreatedAt,
	}
}
