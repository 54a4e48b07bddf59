package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
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

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	customers := repository.NewCustomerRepo(db)
	employers := repository.NewEmployerRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Booking engine over the SQL store, publishing notification jobs
	// to RabbitMQ after each commit.
	store := repository.NewBookingStore(db, hotels, rooms, customers, reservations)
	engine := booking.NewEngine(store, queue_publisher.Publisher{})

	// Background consumer: delivers notification emails with bounded
	// retries.  It reconnects on broker failures and never touches
	// reservation state.
	mailer := queue.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}
	go func() {
		if err := queue.StartNotificationConsumer(queue_publisher.BrokerURL(), queue_publisher.QueueName, mailer); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	// Rate limiting and response caching share one Redis client; both
	// fail open when Redis is unreachable.
	var rate, cache echo.MiddlewareFunc
	rdb := config.NewRedisClient()
	if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled {
		rate = middleware.NewTokenBucket(rlCfg, rdb)
	}
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled {
		cache = middleware.NewRedisCache(cacheCfg, rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, customers), cfg.JWTSecret, rate)
	router.RegisterPublic(e, handler.NewPublicHandler(hotels, rooms, engine), rate, cache)
	router.RegisterStaff(e, handler.NewStaffHandler(hotels, rooms, employers, customers), cfg.JWTSecret)
	router.RegisterReservations(e, handler.NewReservationHandler(engine, reservations, rooms, customers, employers), cfg.JWTSecret, rate)
	router.RegisterCustomers(e, handler.NewCustomerHandler(customers), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
