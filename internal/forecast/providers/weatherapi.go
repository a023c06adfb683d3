package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

// WeatherAPIProvider reads WeatherAPI.com's two-day forecast and uses the
// second day's daily aggregate. Wind arrives as maxwind_mph and is converted
// to m/s.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "WeatherAPI",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		client:  client,
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Fetch(ctx context.Context, loc forecast.Location) (forecast.Forecast, error) {
	if p.apiKey == "" {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureNetwork, fmt.Errorf("weatherapi api key is not configured"))
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts a city name or "lat,lon".
	if loc.City != "" {
		values.Set("q", loc.City)
	} else {
		values.Set("q", fmt.Sprintf("%f,%f", loc.Lat, loc.Lon))
	}
	values.Set("days", "2")

	resp, err := doRequest(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Day struct {
					AvgTempC      float64 `json:"avgtemp_c"`
					TotalPrecipMM float64 `json:"totalprecip_mm"`
					MaxWindMph    float64 `json:"maxwind_mph"`
					Condition     struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, err)
	}

	if len(payload.Forecast.ForecastDay) < 2 {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMissingTarget, fmt.Errorf("response has no entry for tomorrow"))
	}

	day := payload.Forecast.ForecastDay[1].Day
	return forecast.Forecast{
		Source:      p.name,
		Temperature: day.AvgTempC,
		Rainfall:    day.TotalPrecipMM,
		WindSpeed:   day.MaxWindMph * mphToMS,
		Condition:   day.Condition.Text,
	}, nil
}
