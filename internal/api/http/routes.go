package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wakaweather/confidence-meter/internal/alerts"
	"github.com/wakaweather/confidence-meter/internal/forecast"
)

var validate = validator.New()

// Chatter answers free-form user messages.
type Chatter interface {
	Reply(ctx context.Context, message string) string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Query
// parameters override fields of the default location; alertCache and
// chatter may be nil when those features are not configured.
func RegisterRoutes(app *fiber.App, service *forecast.Service, chatter Chatter, alertCache *alerts.Cache, defaultLoc forecast.Location) {
	v1 := app.Group("/api/v1")

	v1.Get("/confidence", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c, defaultLoc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := service.Consensus(c.UserContext(), loc)

		resp := confidenceResponse{Report: report}
		if report.Severe && alertCache != nil {
			got, _ := alertCache.Get()
			resp.DisasterAlerts = got
		}
		return c.JSON(resp)
	})

	v1.Post("/chat", func(c *fiber.Ctx) error {
		if chatter == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "chat is not configured")
		}

		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(chatResponse{Reply: chatter.Reply(c.UserContext(), req.Message)})
	})
}

// confidenceResponse extends the consensus report with cached disaster
// alerts when the forecast is severe.
type confidenceResponse struct {
	forecast.Report
	DisasterAlerts []alerts.Alert `json:"disaster_alerts,omitempty"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// locationQuery holds the validated location once query overrides are
// applied.
type locationQuery struct {
	City     string  `validate:"required"`
	Lat      float64 `validate:"gte=-90,lte=90"`
	Lon      float64 `validate:"gte=-180,lte=180"`
	Country  string
	Timezone string
}

func parseLocationQuery(c *fiber.Ctx, def forecast.Location) (forecast.Location, error) {
	q := locationQuery{
		City:     def.City,
		Country:  def.Country,
		Lat:      def.Lat,
		Lon:      def.Lon,
		Timezone: def.Timezone,
	}

	if v := c.Query("city"); v != "" {
		q.City = v
	}
	if v := c.Query("country"); v != "" {
		q.Country = v
	}
	if v := c.Query("tz"); v != "" {
		q.Timezone = v
	}

	var err error
	if q.Lat, err = queryFloat(c, "lat", q.Lat); err != nil {
		return forecast.Location{}, err
	}
	if q.Lon, err = queryFloat(c, "lon", q.Lon); err != nil {
		return forecast.Location{}, err
	}

	if err := validate.Struct(q); err != nil {
		return forecast.Location{}, err
	}

	return forecast.Location{
		City:     q.City,
		Country:  q.Country,
		Lat:      q.Lat,
		Lon:      q.Lon,
		Timezone: q.Timezone,
	}, nil
}

func queryFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(key + " must be a number")
	}
	return v, nil
}
