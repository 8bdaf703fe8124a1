package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load environment variables from a .env file
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/jobdesk/marketplace-api/internal/config"     // Internal config loader
	"github.com/jobdesk/marketplace-api/internal/database"   // MySQL pool and migrations
	"github.com/jobdesk/marketplace-api/internal/handler"    // HTTP handlers
	"github.com/jobdesk/marketplace-api/internal/middleware" // Rate limiting and caching middleware
	"github.com/jobdesk/marketplace-api/internal/queue"      // RabbitMQ consumer
	"github.com/jobdesk/marketplace-api/internal/repository" // Data access layer
	"github.com/jobdesk/marketplace-api/internal/router"     // Internal router setup
)

func main() {
	// Load variables from a .env file when present.  In production the
	// environment is expected to be provided by the deployment instead.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and run the embedded migrations before serving.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when it cannot be reached the rate limiter and the
	// response cache degrade to pass-through middleware.
	rdb := config.NewRedisClient()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	jobs := repository.NewJobRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	products := repository.NewProductRepo(db)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, rateLimit)
	router.RegisterJobs(e, handler.NewJobHandler(jobs), cfg.JWTSecret, cache)
	router.RegisterAssignments(e, handler.NewAssignmentHandler(assignments, jobs), cfg.JWTSecret)
	router.RegisterProducts(e, handler.NewProductHandler(products), cfg.JWTSecret)

	// Consume completed-assignment events in the background.  The consumer
	// reconnects on failure; an error here only means it gave up entirely.
	go func() {
		if err := queue.StartAssignmentConsumer(); err != nil {
			log.Printf("assignment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
