package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/hbnb-service/config"
	"github.com/Eursukkul/hbnb-service/internal/auth"
	"github.com/Eursukkul/hbnb-service/internal/consumer"
	"github.com/Eursukkul/hbnb-service/internal/handler"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"github.com/Eursukkul/hbnb-service/internal/scheduler"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/Eursukkul/hbnb-service/pkg/database"
	"github.com/Eursukkul/hbnb-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventRepo := repository.NewBookingEventRepository(db)

	// RabbitMQ: booking events out, history back in. Optional.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewHistoryConsumer(eventRepo).Start(ctx, msgs)
	} else {
		log.Println("RABBITMQ_URL not set, booking events disabled")
	}

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	amenitySvc := service.NewAmenityService(amenityRepo)
	placeSvc := service.NewPlaceService(tx, placeRepo, amenityRepo, bookingRepo)
	photoSvc := service.NewPhotoService(tx, placeRepo, photoRepo)
	reviewSvc := service.NewReviewService(placeRepo, reviewRepo)
	bookingSvc := service.NewBookingService(tx, placeRepo, bookingRepo, userRepo, eventRepo, publisher)

	if err := amenitySvc.SeedDefaults(ctx); err != nil {
		log.Fatalf("failed to seed amenities: %v", err)
	}

	go scheduler.New(bookingSvc, cfg.SchedulerInterval).Start(ctx)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestID())
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.RequestID)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "hbnb"})
	})

	handler.RegisterRoutes(e.Group("/api/v1"), tokens, handler.Services{
		Auth:      authSvc,
		Users:     userSvc,
		Amenities: amenitySvc,
		Places:    placeSvc,
		Photos:    photoSvc,
		Reviews:   reviewSvc,
		Bookings:  bookingSvc,
	})

	go func() {
		log.Printf("HBnB service starting on :%s (%s)", cfg.ServerPort, cfg.AppEnv)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
