package file

import (
	"net/http"
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrTooLarge    = apperror.New(http.StatusRequestEntityTooLarge, "uploaded file is too large")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "photo has no thumbnail")
)

// Photo is a stored resort image.
type Photo struct {
	ID            string    `json:"id"` // UUID
	ResortID      int64     `json:"resort_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for a resort photo by its ID.
func PhotoURL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
