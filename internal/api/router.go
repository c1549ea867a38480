package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/resortwale/booking-backend/internal/auth"
	"github.com/resortwale/booking-backend/internal/block"
	blockHttp "github.com/resortwale/booking-backend/internal/block/http"
	"github.com/resortwale/booking-backend/internal/booking"
	bookingHttp "github.com/resortwale/booking-backend/internal/booking/http"
	"github.com/resortwale/booking-backend/internal/file"
	fileHttp "github.com/resortwale/booking-backend/internal/file/http"
	"github.com/resortwale/booking-backend/internal/resort"
	resortHttp "github.com/resortwale/booking-backend/internal/resort/http"
	"github.com/resortwale/booking-backend/internal/user"
	userHttp "github.com/resortwale/booking-backend/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ResortService  resort.Service
	BlockService   block.Service
	BookingService booking.Service
	FileService    file.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// Role gates layered on top of authMiddleware.
	adminMiddleware := auth.RequireRole(string(user.RoleAdmin))
	staffMiddleware := auth.RequireRole(string(user.RoleAdmin), string(user.RoleOwner))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	resortHandler := resortHttp.NewHandler(cfg.ResortService)
	adminBlockHandler := blockHttp.NewHandler(cfg.BlockService, block.SourceAdmin)
	ownerBlockHandler := blockHttp.NewHandler(cfg.BlockService, block.SourceOwner)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		resortHttp.RegisterRoutes(v1, resortHandler, authMiddleware, adminMiddleware)
		blockHttp.RegisterRoutes(v1, "/admin-blocks", adminBlockHandler, authMiddleware, adminMiddleware)
		blockHttp.RegisterRoutes(v1, "/owner-blocks", ownerBlockHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware, staffMiddleware)
	}

	return r
}
