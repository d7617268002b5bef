package server

import (
	"time"

	"backend-tripnest/internal/auth"
	"backend-tripnest/internal/config"
	"backend-tripnest/internal/cost"
	"backend-tripnest/internal/feedback"
	"backend-tripnest/internal/flight"
	"backend-tripnest/internal/itinerary"
	"backend-tripnest/internal/live"
	"backend-tripnest/internal/roles"
	"backend-tripnest/internal/storage"
	"backend-tripnest/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Live  *live.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Live:  live.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	resolver := roles.NewService(s.DB)
	gateway := itinerary.NewGateway(itinerary.NewStore(s.DB), resolver)

	var fares flight.Estimator = flight.NewCached(
		flight.NewClient(s.Cfg.FlightAPIURL, s.Cfg.FlightAPIKey),
		s.Redis,
		s.Cfg.FlightCacheTTL,
	)

	liveSvc := live.NewService(gateway, s.Live, time.Now)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))

	trips := s.App.Group("/trips")
	trip.RegisterRoutes(trips, trip.NewService(s.DB), resolver, jwtMiddleware)
	itinerary.RegisterRoutes(trips, gateway, jwtMiddleware)
	cost.RegisterRoutes(trips, cost.NewService(gateway, fares), jwtMiddleware)
	live.RegisterRoutes(trips, liveSvc)

	feedback.RegisterRoutes(s.App.Group("/feedback"), feedback.NewService(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB), jwtMiddleware)
	live.RegisterStream(s.App.Group("/stream", jwtMiddleware), s.Live)
}
