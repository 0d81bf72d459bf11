// Package app wires configuration, storage, messaging and HTTP routes into a
// runnable catalog service.
package app

import (
	"errors"
	"time"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/database"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled service.
type App struct {
	Fiber *fiber.App

	db  *gorm.DB
	mq  *rabbitmq.Client
	log *zap.Logger
}

// New builds the service from cfg. RabbitMQ and JWT auth are only enabled
// when their settings are non-empty.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	a := &App{db: db, log: log}

	serviceOpts := []services.ProductServiceOption{services.WithLogger(log.Named("products"))}
	if cfg.RabbitMQURL != "" {
		a.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		serviceOpts = append(serviceOpts, services.WithPublisher(a.mq))
	} else {
		log.Warn("RABBITMQ_URL not set, product events disabled")
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, serviceOpts...)
	productHandler := handlers.NewProductHandler(productService, log.Named("http"))

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.RequestIDMiddleware())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:request_id} ${status} ${method} ${path} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"rabbitMQ": a.mq != nil,
		})
	})

	var writeGuards []fiber.Handler
	if cfg.JWTSecret != "" {
		writeGuards = append(writeGuards, middleware.AuthRequired(services.NewAuthService(cfg.JWTSecret), log.Named("auth")))
	} else {
		log.Warn("JWT_SECRET not set, product writes are unauthenticated")
	}

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1, writeGuards...)

	a.Fiber = app
	return a, nil
}

// StartEventLog consumes product events and logs them. It is a no-op when
// RabbitMQ is disabled.
func (a *App) StartEventLog() error {
	if a.mq == nil {
		return nil
	}
	return a.mq.Consume(func(msg amqp.Delivery) error {
		a.log.Info("product event received",
			zap.String("routing_key", msg.RoutingKey),
			zap.ByteString("body", msg.Body),
		)
		return nil
	})
}

// Close shuts down the HTTP server and releases the broker and database.
func (a *App) Close() error {
	var errs []error
	if a.Fiber != nil {
		errs = append(errs, a.Fiber.Shutdown())
	}
	if a.mq != nil {
		errs = append(errs, a.mq.Close())
	}
	errs = append(errs, database.Close(a.db))
	return errors.Join(errs...)
}
