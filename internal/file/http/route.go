package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	// Public photo serving.
	photos := g.Group("/photos")
	photos.GET("/:id", h.Download)
	photos.GET("/:id/thumbnail", h.DownloadThumbnail)

	// Resort photo management (staff).
	g.GET("/resorts/:id/photos", h.ListByResort)
	g.POST("/resorts/:id/photos", authMiddleware, staffMiddleware, h.Upload)
	photos.DELETE("/:id", authMiddleware, staffMiddleware, h.Delete)
}
