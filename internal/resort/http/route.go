package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/resorts")

	// Public browsing.
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/price-rules", h.ListPriceRules)

	// Admin management.
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.PUT("/:id/price-rules", h.SetPriceRule)
		admin.DELETE("/:id/price-rules/:dayType", h.RemovePriceRule)
	}
}
