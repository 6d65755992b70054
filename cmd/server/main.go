package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/muhammadafan/fresh-harvest-connect/internal/assets"
	"github.com/muhammadafan/fresh-harvest-connect/internal/config"
	"github.com/muhammadafan/fresh-harvest-connect/internal/database"
	"github.com/muhammadafan/fresh-harvest-connect/internal/handler"
	"github.com/muhammadafan/fresh-harvest-connect/internal/logger"
	"github.com/muhammadafan/fresh-harvest-connect/internal/queue"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
	"github.com/muhammadafan/fresh-harvest-connect/internal/router"
	"github.com/muhammadafan/fresh-harvest-connect/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env, os.Stderr)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("migration failed")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	profiles := repository.NewProfileRepo(db)
	categories := repository.NewCategoryRepo(db)

	var events handler.EventSink
	if cfg.AMQPURL != "" {
		events = service.NewActivityPublisher(cfg.AMQPURL, log)
		go queue.StartActivityConsumer(cfg.AMQPURL, log)
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, activity events disabled")
	}

	uploads := assets.NewClient(cfg.AssetHostURL, cfg.AssetAPIKey)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.Register(e, cfg, rdb, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, events),
		Products: handler.NewProductHandler(users, products, events),
		Profiles: handler.NewProfileHandler(users, profiles),
		Category: handler.NewCategoryHandler(users, categories),
		Upload:   handler.NewUploadHandler(uploads),
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
