package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/plantcare-engine/internal/api/http"
	"github.com/i474232898/plantcare-engine/internal/config"
	"github.com/i474232898/plantcare-engine/internal/metrics"
	"github.com/i474232898/plantcare-engine/internal/reminder"
	"github.com/i474232898/plantcare-engine/internal/scheduler"
	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/store"
	"github.com/i474232898/plantcare-engine/internal/weather"
	"github.com/i474232898/plantcare-engine/internal/weather/providers"
)

func main() {
	// Load configuration; this also reads .env when present.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Species table: built-in profiles plus the optional operator file.
	table, err := species.LoadTable(cfg.SpeciesFile)
	if err != nil {
		log.Fatalf("failed to load species table: %v", err)
	}
	profiles, err := species.NewStore(table, cfg.SpeciesCacheSize)
	if err != nil {
		log.Fatalf("failed to create species store: %v", err)
	}
	profiles.OnFallback(func(name string) {
		log.Printf("species: no profile for %q, using fallback", name)
		metrics.RecordSpeciesFallback(name)
	})

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Providers with resilience (backoff + circuit breaker).
	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	// Open-Meteo needs no key of its own, but resolving coordinates needs a Google key.
	if cfg.GeocoderAPIKey != "" {
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, providers.GoogleGeocoder(cfg.GeocoderAPIKey)))
	}
	if len(provs) == 0 {
		log.Println("INFO: no weather providers configured; care endpoints need inline weather")
	}

	// Core service orchestrating providers and store.
	service := weather.NewService(memStore, provs).WithObserver(metrics.RecordProviderFetch)

	planner := reminder.NewPlanner(profiles, service, cfg.Adjustment)

	// Scheduler that periodically fetches weather and re-plans reminders.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service).
		WithReminders(planner, cfg.ReminderInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "plantcare-engine",
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

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "plantcare-engine",
			"providers": len(provs),
			"species":   len(table),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather:     service,
		Species:     profiles,
		Reminders:   planner,
		Preferences: cfg.Adjustment,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("plantcare-engine listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
