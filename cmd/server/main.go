package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dfquintero/autoferia/internal/config"
	"github.com/dfquintero/autoferia/internal/database"
	"github.com/dfquintero/autoferia/internal/handler"
	"github.com/dfquintero/autoferia/internal/queue"
	"github.com/dfquintero/autoferia/internal/repository"
	"github.com/dfquintero/autoferia/internal/router"
)

func main() {
	// Load .env if present; deployments set real variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	vehicles := repository.NewVehicleRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	profileH := handler.NewProfileHandler(users)
	publicH := handler.NewPublicVehicleHandler(vehicles)
	sellerH := handler.NewSellerHandler(vehicles)

	// Redis backs the auth rate limiter only. A nil client disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	// Background consumer mirrors published listings into logs/listings.log.
	go func() {
		if err := queue.StartListingConsumer(); err != nil {
			log.Printf("listing-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, profileH, cfg, rdb)
	router.RegisterPublic(e, publicH)
	router.RegisterSeller(e, sellerH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
