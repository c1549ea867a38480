package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resortwale/booking-backend/internal/api"
	"github.com/resortwale/booking-backend/internal/auth"
	"github.com/resortwale/booking-backend/internal/block"
	"github.com/resortwale/booking-backend/internal/booking"
	"github.com/resortwale/booking-backend/internal/file"
	"github.com/resortwale/booking-backend/internal/pkg/storage"
	"github.com/resortwale/booking-backend/internal/pricing"
	"github.com/resortwale/booking-backend/internal/resort"
	"github.com/resortwale/booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
	FileStore       storage.Storage
	PricingTimezone *time.Location

	// BlockCapabilities is probed once at startup; it tells the block
	// repository which blocked-date tables exist in this deployment.
	BlockCapabilities block.Capabilities
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	priceResolver := pricing.NewResolver(cfg.PricingTimezone)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Resort Module
	resortRepo := resort.NewPgxRepository(cfg.DBPool)
	resortService := resort.NewService(resortRepo)

	// Block Module
	blockRepo := block.NewPgxRepository(cfg.DBPool, cfg.BlockCapabilities)
	blockService := block.NewService(blockRepo, resortService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool, cfg.PricingTimezone)
	checker := booking.NewChecker(resortService, blockService, bookingRepo, priceResolver)
	bookingService := booking.NewService(bookingRepo, checker)

	// File Module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, resortService, cfg.FileStore)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ResortService:  resortService,
		BlockService:   blockService,
		BookingService: bookingService,
		FileService:    fileService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
