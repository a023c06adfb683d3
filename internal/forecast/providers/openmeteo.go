package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

// OpenMeteoProvider reads Open-Meteo's hourly forecast series and selects
// the entry for tomorrow at 12:00 local time. Open-Meteo needs no API key.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	clock   clockwork.Clock
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, clock clockwork.Clock) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "Open-Meteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		clock:   clock,
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc forecast.Location) (forecast.Forecast, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	values.Set("hourly", "temperature_2m,precipitation,weathercode,windspeed_10m")
	values.Set("timezone", "auto")

	resp, err := doRequest(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature2m []float64 `json:"temperature_2m"`
			Precipitation []float64 `json:"precipitation"`
			WeatherCode   []int     `json:"weathercode"`
			WindSpeed10m  []float64 `json:"windspeed_10m"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, err)
	}

	target := targetDay(p.clock, loc).Format("2006-01-02") + "T12:00"
	idx := -1
	for i, t := range payload.Hourly.Time {
		if t == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMissingTarget, fmt.Errorf("no hourly entry for %s", target))
	}

	h := payload.Hourly
	if idx >= len(h.Temperature2m) || idx >= len(h.Precipitation) || idx >= len(h.WeatherCode) || idx >= len(h.WindSpeed10m) {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, fmt.Errorf("hourly series are shorter than the time axis"))
	}

	return forecast.Forecast{
		Source:      p.name,
		Temperature: h.Temperature2m[idx],
		Rainfall:    h.Precipitation[idx],
		WindSpeed:   h.WindSpeed10m[idx],
		Condition:   mapWeatherCode(h.WeatherCode[idx]),
	}, nil
}

// mapWeatherCode collapses Open-Meteo weather codes into the two condition
// texts the scoring pipeline distinguishes.
func mapWeatherCode(code int) string {
	switch code {
	case 95, 96, 99:
		return "Storm"
	default:
		return "Clear or Cloudy"
	}
}
