package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/config"
	"github.com/iliyamo/event-reservation/internal/database"
	"github.com/iliyamo/event-reservation/internal/handler"
	"github.com/iliyamo/event-reservation/internal/middleware"
	"github.com/iliyamo/event-reservation/internal/queue"
	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/router"
	"github.com/iliyamo/event-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db, "migrations", cfg.DBName); err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)

	publisher := queue.NewPublisher(cfg.AMQPURL)
	go queue.StartConfirmedConsumer(cfg.AMQPURL)

	eventService := service.NewEventService(eventRepo, reservationRepo)
	reservationService := service.NewReservationService(eventRepo, reservationRepo, publisher)
	statsService := service.NewStatsService(eventRepo, reservationRepo, userRepo)

	eventHandler := handler.NewEventHandler(eventService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	statsHandler := handler.NewStatsHandler(statsService)
	userHandler := handler.NewUserHandler(userRepo)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, eventHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterParticipant(e, reservationHandler, userHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, eventHandler, reservationHandler, statsHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
