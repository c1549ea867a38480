package block

import (
	"net/http"
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "blocked date not found")
	ErrAlreadyBlocked    = apperror.New(http.StatusConflict, "date is already blocked")
	ErrUnknownSource     = apperror.New(http.StatusBadRequest, "unknown block source")
	ErrSourceUnavailable = apperror.New(http.StatusNotImplemented, "block table not configured in this deployment")
)

// Source identifies who placed a date block. Admin and owner blocks live in
// separate tables and produce distinct user-facing rejections.
type Source string

const (
	SourceAdmin Source = "admin"
	SourceOwner Source = "owner"
)

// Block marks a single calendar date of a resort as unbookable.
type Block struct {
	ID        int64     `json:"id"`
	ResortID  int64     `json:"resort_id"`
	BlockDate time.Time `json:"block_date"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Capabilities records which block tables exist in this deployment.
// Either table may be absent; an absent table reads as "no blocks".
type Capabilities struct {
	AdminBlocks bool
	OwnerBlocks bool
}

// Has reports whether the table backing the given source is present.
func (c Capabilities) Has(source Source) bool {
	switch source {
	case SourceAdmin:
		return c.AdminBlocks
	case SourceOwner:
		return c.OwnerBlocks
	default:
		return false
	}
}
