package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/college-event-ticketing/internal/config"
	"github.com/iliyamo/college-event-ticketing/internal/database"
	"github.com/iliyamo/college-event-ticketing/internal/handler"
	"github.com/iliyamo/college-event-ticketing/internal/queue"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
	"github.com/iliyamo/college-event-ticketing/internal/router"
	"github.com/iliyamo/college-event-ticketing/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable

	// Repositories.
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Services.
	broker := queue.NewBroker()
	bookingSvc := service.NewBookingService(eventRepo, bookingRepo, broker)
	eventSvc := service.NewEventService(eventRepo, bookingRepo)

	// Fulfilment consumer runs alongside the API and reconnects on its
	// own; a broker outage must not stop the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Deps{
		Cfg:      cfg,
		RateCfg:  config.LoadRateLimitConfig(),
		CacheCfg: config.LoadCacheConfig(),
		Redis:    rdb,
		Auth:     handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Events:   handler.NewEventHandler(eventSvc),
		Bookings: handler.NewBookingHandler(bookingSvc),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
