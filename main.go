package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Eursukkul/hotel-booking/config"
	"github.com/Eursukkul/hotel-booking/internal/consumer"
	"github.com/Eursukkul/hotel-booking/internal/handler"
	"github.com/Eursukkul/hotel-booking/internal/middleware"
	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/Eursukkul/hotel-booking/pkg/database"
	"github.com/Eursukkul/hotel-booking/pkg/jwt"
	"github.com/Eursukkul/hotel-booking/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Notifications: websocket feed, plus the broker when configured
	hub := notification.NewHub()
	defer hub.Close()
	notifiers := notification.Fanout{hub}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, rabbitmq.BookingsExchange)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifiers = append(notifiers, notification.NewBrokerNotifier(publisher))

		// RabbitMQ consumer: sync rooms and users from the catalog and auth services
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.CatalogExchange, rabbitmq.CatalogQueue, rabbitmq.CatalogBindings...)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		catalogConsumer := consumer.NewCatalogConsumer(roomRepo, userRepo)
		g.Go(func() error {
			return catalogConsumer.Run(gctx, msgs)
		})
	} else {
		log.Println("RABBITMQ_URL not set, running without the message broker")
	}

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, notifiers)
	enricher := service.NewEnricher(roomRepo, userRepo)
	roomCatalog := service.NewRoomCatalog(roomRepo)
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMw.ContextTimeoutWithConfig(echoMw.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/ws/")
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "booking-service"})
	})

	api := e.Group("/api")
	handler.NewBookingHandler(bookingSvc, enricher).RegisterRoutes(api.Group("/bookings"), middleware.Auth(tokens))
	handler.NewRoomHandler(roomCatalog).RegisterRoutes(api.Group("/rooms"))
	handler.NewFeedHandler(hub, tokens).RegisterRoutes(e.Group("/ws"))

	g.Go(func() error {
		log.Printf("Booking Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		hub.Close()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Booking Service stopped: %v", err)
	}
}
