package main

import (
	"log"
	"net/http"
	"os"

	"eventbuddy/docs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"eventbuddy/internal/auth"
	"eventbuddy/internal/cache"
	"eventbuddy/internal/config"
	"eventbuddy/internal/db"
	"eventbuddy/internal/handler"
	"eventbuddy/internal/mail"
	"eventbuddy/internal/model"
	"eventbuddy/internal/queue"
	"eventbuddy/internal/repository"
	"eventbuddy/internal/router"
	"eventbuddy/internal/service"
)

// @title Event Buddy API
// @version 1.0
// @description Event registration backend with seat bookings and JWT role authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Booking{},
			&model.Event{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Outbound side effects
	mailer := mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	publisher := queue.NewAMQPPublisher(cfg.AMQPURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, cacheClient)
	bookingService := service.NewBookingService(userRepo, bookingRepo, cacheClient, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		userHandler,
		eventHandler,
		bookingHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
