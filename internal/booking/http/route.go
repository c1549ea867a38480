package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	// Guests check availability and book without an account.
	g.GET("/availability", h.CheckAvailability)
	g.POST("/bookings", h.Create)

	// Staff-only booking management.
	group := g.Group("/bookings")
	group.Use(authMiddleware, staffMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/payment-status", h.SetPaymentStatus)
	}
}
