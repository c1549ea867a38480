package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resortwale/booking-backend/internal/file"
	"github.com/resortwale/booking-backend/internal/pkg/response"
)

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

// Upload stores a photo for the resort named in the path.
func (h *Handler) Upload(c *gin.Context) {
	resortID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || resortID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), resortID, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            p.ID,
		"resort_id":     p.ResortID,
		"url":           file.PhotoURL(p.ID),
		"thumbnail_url": file.ThumbnailURL(p.ID),
	})
}

func (h *Handler) ListByResort(c *gin.Context) {
	resortID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || resortID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resort id"})
		return
	}

	photos, err := h.service.ListByResort(c.Request.Context(), resortID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, len(photos))
	for i, p := range photos {
		items[i] = gin.H{
			"id":            p.ID,
			"resort_id":     p.ResortID,
			"url":           file.PhotoURL(p.ID),
			"thumbnail_url": file.ThumbnailURL(p.ID),
			"created_at":    p.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Download(c *gin.Context) {
	rc, p, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", p.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) DownloadThumbnail(c *gin.Context) {
	rc, _, err := h.service.DownloadThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
