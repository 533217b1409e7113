package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vmaslov/coworking-booking/internal/config"
	"github.com/vmaslov/coworking-booking/internal/database"
	"github.com/vmaslov/coworking-booking/internal/handler"
	"github.com/vmaslov/coworking-booking/internal/logger"
	"github.com/vmaslov/coworking-booking/internal/middleware"
	"github.com/vmaslov/coworking-booking/internal/queue"
	"github.com/vmaslov/coworking-booking/internal/repository"
	"github.com/vmaslov/coworking-booking/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	coworkingRepo := repository.NewCoworkingRepo(db)
	workplaceRepo := repository.NewWorkplaceRepo(db)
	typeRepo := repository.NewWorkplaceTypeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{
		CoworkingRepo: coworkingRepo,
		WorkplaceRepo: workplaceRepo,
		TypeRepo:      typeRepo,
		ReviewRepo:    reviewRepo,
	}
	availabilityHandler := &handler.AvailabilityHandler{
		Cfg:           cfg,
		WorkplaceRepo: workplaceRepo,
		BookingRepo:   bookingRepo,
	}
	bookingHandler := handler.NewBookingHandler(cfg, bookingRepo, workplaceRepo, log)
	paymentHandler := &handler.PaymentHandler{
		BookingRepo: bookingRepo,
		PaymentRepo: paymentRepo,
		Log:         log,
	}
	reviewHandler := &handler.ReviewHandler{ReviewRepo: reviewRepo}
	favoriteHandler := &handler.FavoriteHandler{
		FavoriteRepo:  favoriteRepo,
		WorkplaceRepo: workplaceRepo,
	}
	adminHandler := handler.NewAdminHandler(coworkingRepo, workplaceRepo, typeRepo, bookingRepo, userRepo, paymentRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, availabilityHandler, config.LoadCacheConfig(), rdb)
	router.RegisterCustomer(e, bookingHandler, paymentHandler, reviewHandler, favoriteHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	go queue.StartConsumer(os.Getenv("RABBITMQ_URL"))

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
