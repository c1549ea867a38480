package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts one block surface (admin or owner) under prefix.
// The role middleware decides who may manage that surface's blocks.
func RegisterRoutes(g *gin.RouterGroup, prefix string, h *Handler, authMiddleware, roleMiddleware gin.HandlerFunc) {
	group := g.Group(prefix)
	group.Use(authMiddleware, roleMiddleware)
	{
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
		group.GET("/resort/:id", h.ListByResort)
	}
}
