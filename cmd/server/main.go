package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/configdb/internal/config"
	"github.com/localnerve/configdb/internal/database"
	"github.com/localnerve/configdb/internal/handlers"
	"github.com/localnerve/configdb/internal/middleware"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/types"

	_ "github.com/localnerve/configdb/docs/api" // Swagger docs
)

// @title ConfigDB API
// @version 1.0.0
// @description Configuration management service: key/value entries under a shortname/version namespace
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/configdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("configdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Wire the store, the managers, and the duplication orchestrator
	entityStore := store.New(db)
	authService := services.NewAuthService(entityStore, cfg)
	versionService := services.NewVersionService(entityStore)
	shortnameService := services.NewShortnameService(entityStore, versionService)
	configurationService := services.NewConfigurationService(entityStore)
	duplicationService := services.NewDuplicationService(versionService, configurationService)

	authHandler := &handlers.AuthHandler{Auth: authService}
	shortnameHandler := &handlers.ShortnameHandler{Shortnames: shortnameService}
	versionHandler := &handlers.VersionHandler{Versions: versionService, Duplication: duplicationService}
	configurationHandler := &handlers.ConfigurationHandler{Configurations: configurationService}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Public routes
	api.Get("/health", healthHandler.GetHealth)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Every request past this point requires a bearer credential
	api.Use(middleware.Auth(authService))

	// Shortname routes
	api.Get("/shortnames", shortnameHandler.ListShortnames)
	api.Post("/shortnames", shortnameHandler.CreateShortname)
	api.Get("/shortnames/:shortname", shortnameHandler.GetShortname)
	api.Put("/shortnames/:shortname", shortnameHandler.UpdateShortname)
	api.Delete("/shortnames/:shortname", shortnameHandler.DeleteShortname)

	// Shortname-scoped version routes
	api.Get("/shortnames/:shortname/versions", versionHandler.ListVersions)
	api.Post("/shortnames/:shortname/versions", versionHandler.CreateVersion)
	api.Get("/shortnames/:shortname/versions/:version", versionHandler.GetVersion)
	api.Put("/shortnames/:shortname/versions/:version", versionHandler.UpdateVersion)
	api.Delete("/shortnames/:shortname/versions/:version", versionHandler.DeleteVersion)

	// Configuration routes
	api.Get("/shortnames/:shortname/versions/:version/configurations", configurationHandler.ListConfigurations)
	api.Post("/shortnames/:shortname/versions/:version/configurations", configurationHandler.CreateConfiguration)
	api.Get("/shortnames/:shortname/versions/:version/configurations/:configId", configurationHandler.GetConfiguration)
	api.Put("/shortnames/:shortname/versions/:version/configurations/:configId", configurationHandler.UpdateConfiguration)
	api.Delete("/shortnames/:shortname/versions/:version/configurations/:configId", configurationHandler.DeleteConfiguration)

	// Top-level version routes and duplication
	api.Get("/versions", versionHandler.ListReleases)
	api.Post("/versions", versionHandler.CreateRelease)
	api.Get("/versions/:version/shortnames", versionHandler.ListShortnamesForVersion)
	api.Post("/versions/:version/shortnames", versionHandler.AssociateShortname)
	api.Post("/versions/:version/duplicate", versionHandler.DuplicateVersion)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler maps the service error taxonomy to status codes and a
// JSON message body. Stack traces are never surfaced.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "internal"
	internal := ""

	var apiErr *types.ApiError
	var fiberErr *fiber.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
		errorType = apiErr.Type
		internal = apiErr.Internal
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	body := fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if internal != "" {
		body["internal"] = internal
	}

	return c.Status(code).JSON(body)
}
