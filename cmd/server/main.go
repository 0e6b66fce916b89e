package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/abhinavmaity/ParkIt/internal/config"
	"github.com/abhinavmaity/ParkIt/internal/database"
	"github.com/abhinavmaity/ParkIt/internal/handler"
	"github.com/abhinavmaity/ParkIt/internal/middleware"
	"github.com/abhinavmaity/ParkIt/internal/queue"
	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/router"
	"github.com/abhinavmaity/ParkIt/internal/service"
)

func main() {
	// .env is optional; in containers the environment is already set.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, database.Pool{
		MaxOpen: cfg.DBMaxOpenConns,
		MaxIdle: cfg.DBMaxIdleConns,
		MaxLife: cfg.DBConnMaxLife,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the response cache.  Both
	// degrade to pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	spots := repository.NewSpotRepo(db)
	bookings := repository.NewBookingRepo(db)
	txns := repository.NewTransactionRepo(db)
	secLogs := repository.NewSecurityLogRepo(db)
	violations := repository.NewViolationRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	payMethods := repository.NewPaymentMethodRepo(db)

	// Services.
	events := service.AMQPPublisher{}
	resolver := service.NewAvailabilityResolver(spots, bookings)
	lifecycle := service.NewBookingLifecycle(spots, bookings)
	payments := service.NewPaymentService(txns, lifecycle, events)
	scans := service.NewScanService(lifecycle, secLogs, events)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	spotH := handler.NewSpotHandler(spots, resolver)
	bookingH := handler.NewBookingHandler(spots, bookings, lifecycle, payments)
	securityH := handler.NewSecurityHandler(scans, secLogs, violations)
	adminH := handler.NewAdminHandler(users, bookings, txns, secLogs, lifecycle)
	vehicleH := handler.NewVehicleHandler(vehicles)
	payMethodH := handler.NewPaymentMethodHandler(payMethods)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, spotH, cacheCfg, rdb)
	router.RegisterUser(e, bookingH, vehicleH, payMethodH, cfg.JWTSecret)
	router.RegisterSecurity(e, securityH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, spotH, cfg.JWTSecret)

	// The audit consumer drains booking.paid and security.scan into the
	// on-disk audit log.  It reconnects on its own; a broker outage
	// never takes the API down.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
