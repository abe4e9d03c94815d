package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

// Server is the wired catalog API together with the resources it owns.
type Server struct {
	App *fiber.App

	db *gorm.DB
	mq *rabbitmq.Client
}

type stores struct {
	products  repositories.ProductRepository
	forbidden repositories.ForbiddenWordRepository
	history   repositories.HistoryRepository
	users     repositories.UserRepository
}

// NewServer builds repositories, services and routes for cfg.
func NewServer(cfg config.Config, dbLogLevel gormlogger.LogLevel) (*Server, error) {
	s := &Server{}

	repos, err := s.openStores(cfg, dbLogLevel)
	if err != nil {
		return nil, err
	}

	historyService := services.NewHistoryService(repos.history, repos.products)

	// Without a broker the history service records events as they happen.
	var publisher services.EventPublisher = historyService
	if cfg.HistoryEnabled() {
		s.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		if err := s.mq.ConsumeProductEvents(historyService.HandleDelivery); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to start product event consumer: %w", err)
		}
		publisher = s.mq
	}

	productService := services.NewProductService(repos.products, repos.forbidden, publisher)
	forbiddenService := services.NewForbiddenWordService(repos.forbidden)
	if err := forbiddenService.Seed(cfg.ForbiddenWords); err != nil {
		s.Close()
		return nil, err
	}

	app := fiber.New(fiber.Config{AppName: "katalog"})
	app.Use(recover.New())
	app.Use(logger.New())

	historyMode := "in-process"
	if s.mq != nil {
		historyMode = "rabbitmq"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"store":   cfg.DBDriver,
			"history": historyMode,
		})
	})

	handlers.NewDocsHandler().RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")

	var guards []fiber.Handler
	if cfg.AuthEnabled {
		authService := services.NewAuthService(repos.users, cfg.JWTSecret)
		handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
		guards = append(guards, middleware.AuthRequired(authService))
	}

	handlers.NewProductHandler(productService, historyService).RegisterRoutes(apiV1, guards...)
	handlers.NewForbiddenWordHandler(forbiddenService).RegisterRoutes(apiV1, guards...)

	s.App = app
	return s, nil
}

func (s *Server) openStores(cfg config.Config, dbLogLevel gormlogger.LogLevel) (stores, error) {
	if cfg.DBDriver == config.DriverMemory {
		return stores{
			products:  repositories.NewInMemoryProductRepository(),
			forbidden: repositories.NewInMemoryForbiddenWordRepository(),
			history:   repositories.NewInMemoryHistoryRepository(),
			users:     repositories.NewInMemoryUserRepository(),
		}, nil
	}

	db, err := database.Open(cfg, dbLogLevel)
	if err != nil {
		return stores{}, err
	}
	s.db = db
	return stores{
		products:  repositories.NewGORMProductRepository(db),
		forbidden: repositories.NewGORMForbiddenWordRepository(db),
		history:   repositories.NewGORMHistoryRepository(db),
		users:     repositories.NewGORMUserRepository(db),
	}, nil
}

// Close releases the broker connection and the database pool.
func (s *Server) Close() error {
	var errs []error
	if s.mq != nil {
		errs = append(errs, s.mq.Close())
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func main() {
	cfg, err := config.Load(config.New())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	server, err := NewServer(cfg, gormlogger.Warn)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s (store: %s, auth: %t)", cfg.AppPort, cfg.DBDriver, cfg.AuthEnabled)
		if err := server.App.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := server.App.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if err := server.Close(); err != nil {
		log.Printf("Error releasing resources: %v", err)
	}
	log.Println("Server gracefully stopped")
}
