package main

import (
	"log"

	"github.com/Team-FBI/WPS/config"
	"github.com/Team-FBI/WPS/internal/consumer"
	"github.com/Team-FBI/WPS/internal/handler"
	"github.com/Team-FBI/WPS/internal/middleware"
	"github.com/Team-FBI/WPS/internal/repository"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/Team-FBI/WPS/pkg/database"
	"github.com/Team-FBI/WPS/pkg/rabbitmq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without it the API still serves, events are
	// just not published and no notifications are written.
	var publisher service.EventPublisher
	mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
	} else {
		defer mqPublisher.Close()
		publisher = mqPublisher
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	tripRepo := repository.NewTripRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	if mqPublisher != nil {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect consumer to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewNotificationConsumer(notificationRepo).Start(msgs)
	}

	// Services
	userSvc := service.NewUserService(userRepo)
	roomSvc := service.NewRoomService(roomRepo)
	reservationSvc := service.NewReservationService(reservationRepo, roomRepo, publisher)
	tripSvc := service.NewTripService(tripRepo, publisher)
	wishlistSvc := service.NewWishlistService(wishlistRepo, roomRepo)
	chatSvc := service.NewChatService(messageRepo, reservationRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "wps"})
	})

	handler.NewUserHandler(userSvc, notificationRepo).RegisterRoutes(e)
	handler.NewRoomHandler(roomSvc).RegisterRoutes(e)
	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)
	handler.NewTripHandler(tripSvc).RegisterRoutes(e)
	handler.NewWishlistHandler(wishlistSvc).RegisterRoutes(e)
	handler.NewChatHandler(chatSvc).RegisterRoutes(e)

	log.Printf("WPS API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
