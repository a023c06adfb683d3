package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"

	"github.com/wakaweather/confidence-meter/internal/alerts"
	httpapi "github.com/wakaweather/confidence-meter/internal/api/http"
	"github.com/wakaweather/confidence-meter/internal/chat"
	"github.com/wakaweather/confidence-meter/internal/config"
	"github.com/wakaweather/confidence-meter/internal/forecast"
	"github.com/wakaweather/confidence-meter/internal/forecast/providers"
	"github.com/wakaweather/confidence-meter/internal/logger"
	"github.com/wakaweather/confidence-meter/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.ProviderTimeout,
	}
	clock := clockwork.NewRealClock()

	// Registration order is the confidence comparison priority.
	provs := []forecast.Provider{
		providers.NewOpenWeatherProvider(httpClient, clock, cfg.OpenWeatherAPIKey),
		providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey),
		providers.NewOpenMeteoProvider(httpClient, clock),
		providers.NewWeatherstackProvider(httpClient, cfg.WeatherstackAPIKey),
	}

	service := forecast.NewService(provs, forecast.NewRecommender(nil), cfg.ProviderTimeout, appLog)

	// Disaster alert feed with a periodically refreshed in-memory cache.
	alertCache := alerts.NewCache()
	feed := alerts.NewFeed(cfg.AlertsFeedURL, cfg.AlertCountries, appLog)
	sched := scheduler.New(feed, alertCache, cfg.AlertsRefresh, appLog)
	if err := sched.Start(); err != nil {
		appLog.Fatalf("failed to start alert scheduler: %v", err)
	}
	defer sched.Stop()

	var chatter httpapi.Chatter
	if cfg.OpenAIAPIKey != "" {
		chatter = chat.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel, "", appLog)
	} else {
		appLog.Warn("OPENAI_API_KEY not set; chat endpoint disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:               "confidence-meter",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
			"service": "confidence-meter",
		})
	})

	httpapi.RegisterRoutes(app, service, chatter, alertCache, cfg.DefaultLocation)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Errorf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Errorf("error during shutdown: %v", err)
	}
}
