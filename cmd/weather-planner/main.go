package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpapi "github.com/tzapp/weather-planner/internal/api/http"
	"github.com/tzapp/weather-planner/internal/chat"
	"github.com/tzapp/weather-planner/internal/config"
	"github.com/tzapp/weather-planner/internal/geo"
	"github.com/tzapp/weather-planner/internal/logger"
	"github.com/tzapp/weather-planner/internal/scheduler"
	"github.com/tzapp/weather-planner/internal/store"
	"github.com/tzapp/weather-planner/internal/weather"
	"github.com/tzapp/weather-planner/internal/weather/providers"
)

func main() {
	log := logger.GetLogger()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		log.Infow("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	openWeather := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey)
	elevation := geo.NewElevationClient(httpClient)
	geocoder := geo.NewGeocoder(cfg.GoogleAPIKey)
	chatClient := chat.NewClient(httpClient, cfg.ChatBaseURL)
	memStore := store.NewMemoryStore()

	service := weather.NewService(openWeather, elevation, clockwork.NewRealClock())

	// Keeps the saved location's snapshot fresh in the background.
	sched := scheduler.New(service, memStore, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-planner",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-planner",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather: service,
		Names:   geocoder,
		Chat:    chatClient,
		Store:   memStore,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("fiber server stopped", "error", err)
		}
	}()
	log.Infow("weather-planner listening", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
}
